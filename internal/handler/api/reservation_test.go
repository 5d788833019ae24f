//go:build unit

package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tablebook/internal/handler/api"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	commandsmock "tablebook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	handler := api.NewReservationHandler(s.mockCommands)

	s.router.POST("/reservations", handler.CreateReservation)
	s.router.PATCH("/reservations/:invoice_id/status", handler.UpdateStatus)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	outletID := uuid.New()
	body := `{"outlet_id":"` + outletID.String() + `","date":"2026-09-14","time":"19:00","party_size":2}`

	s.Run("creates a reservation", func() {
		view := &commands.AssignmentView{
			OutletID:   outletID,
			InvoiceID:  uuid.New(),
			BookingIDs: []uuid.UUID{uuid.New()},
			TableIDs:   []uuid.UUID{uuid.New()},
			Kind:       "single_table",
			StartsAt:   time.Date(2026, 9, 14, 19, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2026, 9, 14, 21, 0, 0, 0, time.UTC),
		}
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p commands.ReserveParams) (*commands.AssignmentView, error) {
				s.Equal(outletID, p.OutletID)
				s.Equal("2026-09-14", p.Date)
				s.Equal("19:00", p.Time)
				s.Equal(2, p.PartySize)
				return view, nil
			})

		rec := s.post(body)

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), "single_table")
	})

	s.Run("rejects malformed body", func() {
		rec := s.post(`{"outlet_id":"` + outletID.String() + `"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps full timeslot to 409", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, errs.ErrTimeslotFull)

		rec := s.post(body)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("maps event conflict to 409", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, errs.ErrEventConflict)

		rec := s.post(body)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("maps closed outlet to 422", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, errs.ErrOutletClosed)

		rec := s.post(body)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("maps unknown outlet to 404", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, errs.ErrOutletNotFound)

		rec := s.post(body)

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) patchStatus(invoiceID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/reservations/"+invoiceID+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReservationHandlerTestSuite) TestUpdateStatus() {
	invoiceID := uuid.New()

	s.Run("updates the status", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p commands.UpdateStatusParams) error {
				s.Equal(invoiceID, p.InvoiceID)
				s.Equal("CONFIRMED", p.Status)
				return nil
			})

		rec := s.patchStatus(invoiceID.String(), `{"status":"CONFIRMED"}`)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("rejects malformed invoice id", func() {
		rec := s.patchStatus("not-a-uuid", `{"status":"CONFIRMED"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects missing status", func() {
		rec := s.patchStatus(invoiceID.String(), `{}`)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps unknown invoice to 404", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(errs.ErrBookingNotFound)

		rec := s.patchStatus(invoiceID.String(), `{"status":"CANCELLED"}`)

		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("maps forbidden transition to 422", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(errs.ErrInvalidStatusTransition)

		rec := s.patchStatus(invoiceID.String(), `{"status":"CONFIRMED"}`)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

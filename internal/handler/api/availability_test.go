//go:build unit

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebook/internal/handler/api"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"
	queriesmock "tablebook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/outlets/:id/availability", handler.ListSlots)
	s.router.GET("/availability/search", handler.Search)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AvailabilityHandlerTestSuite) TestListSlots() {
	outletID := uuid.New()
	view := &queries.DayAvailabilityView{
		OutletID:   outletID,
		OutletName: "Harbour Front",
		Date:       "2026-09-14",
		PartySize:  2,
		Slots: []queries.SlotView{
			{Time: "18:00", Enabled: true},
			{Time: "18:30", Enabled: true},
		},
	}

	s.Run("returns resolved slots", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any(), gomock.Any()).Return(view, nil)

		rec := s.get("/outlets/" + outletID.String() + "/availability?date=2026-09-14&party_size=2")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "18:00")
		s.Contains(rec.Body.String(), "Harbour Front")
	})

	s.Run("rejects malformed outlet id", func() {
		rec := s.get("/outlets/not-a-uuid/availability?date=2026-09-14&party_size=2")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects missing party size", func() {
		rec := s.get("/outlets/" + outletID.String() + "/availability?date=2026-09-14")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps unknown outlet to 404", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any(), gomock.Any()).Return(nil, errs.ErrOutletNotFound)

		rec := s.get("/outlets/" + outletID.String() + "/availability?date=2026-09-14&party_size=2")

		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("maps past date to 400", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any(), gomock.Any()).Return(nil, errs.ErrPastDate)

		rec := s.get("/outlets/" + outletID.String() + "/availability?date=2020-01-01&party_size=2")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestSearch() {
	a, b := uuid.New(), uuid.New()

	s.Run("fans out to every outlet", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p queries.SearchParams) ([]*queries.DayAvailabilityView, error) {
				s.Equal([]uuid.UUID{a, b}, p.OutletIDs)
				return []*queries.DayAvailabilityView{
					{OutletID: a, Date: p.Date, PartySize: p.PartySize},
					{OutletID: b, Date: p.Date, PartySize: p.PartySize},
				}, nil
			})

		rec := s.get("/availability/search?outlet_ids=" + a.String() + "," + b.String() + "&date=2026-09-14&party_size=4")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), a.String())
		s.Contains(rec.Body.String(), b.String())
	})

	s.Run("rejects malformed outlet list", func() {
		rec := s.get("/availability/search?outlet_ids=nope&date=2026-09-14&party_size=4")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

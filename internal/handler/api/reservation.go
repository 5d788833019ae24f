package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservations commands.ReservationCommands
}

func NewReservationHandler(reservations commands.ReservationCommands) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// @Summary Create reservation
// @Description Allocate tables for a party at a concrete date and time and persist the booking
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.reservations.Reserve(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOutletNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Outlet not found",
			})
		case errors.Is(err, errs.ErrInvalidPartySize):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Party size must be positive",
			})
		case errors.Is(err, errs.ErrInvalidTimeFormat):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed date or time",
			})
		case errors.Is(err, errs.ErrPastDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Requested time is in the past",
			})
		case errors.Is(err, errs.ErrOutletClosed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Outlet is closed at the requested time",
			})
		case errors.Is(err, errs.ErrEventConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested time is blocked by a ticketed event",
			})
		case errors.Is(err, errs.ErrPrivateRoomBlocked):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Private room cannot be booked this close to the requested time",
			})
		case errors.Is(err, errs.ErrTimeslotFull):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No tables available for the requested time",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAssignmentView(view))
}

// @Summary Update reservation status
// @Description Move all bookings of an invoice to a new status (confirm, cancel, no-show, left)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invoice_id path string true "Invoice ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{invoice_id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoice_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid invoice ID",
		})
		return
	}

	var req reqdto.UpdateReservationStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.reservations.UpdateStatus(c.Request.Context(), commands.UpdateStatusParams{
		InvoiceID: invoiceID,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, errs.ErrInvalidStatusTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Status transition not allowed",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown booking status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

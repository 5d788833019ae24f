package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary List availability for one outlet-day
// @Description Resolve trading hours and return the bookable time slots for a date and party size
// @Tags availability
// @Produce json
// @Param id path string true "Outlet ID"
// @Param date query string true "Date (YYYY-MM-DD, outlet-local)"
// @Param party_size query int true "Party size"
// @Param preferred_time query string false "Preferred time (HH:mm) to center the slot window on"
// @Param offering query string false "Offering name whose lead time gates slots"
// @Param private_room query bool false "Only list days where a private room could hold the party"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /outlets/{id}/availability [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	outletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid outlet ID",
		})
		return
	}

	var req reqdto.ListSlotsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.availability.ListSlots(c.Request.Context(), req.ToParams(outletID))
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailabilityView(view))
}

// @Summary Search availability across outlets
// @Description Evaluate the same date and party size against several outlets concurrently
// @Tags availability
// @Produce json
// @Param outlet_ids query string true "Comma-separated outlet IDs"
// @Param date query string true "Date (YYYY-MM-DD, outlet-local)"
// @Param party_size query int true "Party size"
// @Param preferred_time query string false "Preferred time (HH:mm)"
// @Success 200 {array} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability/search [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req reqdto.SearchRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	outletIDs, err := req.ParseOutletIDs()
	if err != nil || len(outletIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid outlet ID list",
		})
		return
	}

	views, err := h.availability.Search(c.Request.Context(), queries.SearchParams{
		OutletIDs:     outletIDs,
		Date:          req.Date,
		PartySize:     req.PartySize,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailabilityViews(views))
}

func (h *AvailabilityHandler) respondAvailabilityError(c *gin.Context, err error) {
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
			"error": "Date is in the past",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

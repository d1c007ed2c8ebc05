package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
	"github.com/dotr-dev/vehicle-booking/backend/internal/utils"
)

func (h *Handler) GetAllServiceTypes(w http.ResponseWriter, r *http.Request) {
	serviceTypes, err := h.repository.GetAllServiceTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched service types", serviceTypes)
}

// GetServiceAvailability returns the remaining capacity per slot for one
// service over a date range. Without query parameters the range defaults to
// today through the end of the booking horizon.
func (h *Handler) GetServiceAvailability(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ServiceTypeCtx).(*domain.ServiceType)

	now := time.Now()
	from := domain.NormalizeDate(now)
	to := from.AddDate(0, 0, h.config.Booking.HorizonDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := utils.ParseBookingDate(raw)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := utils.ParseBookingDate(raw)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		to = parsed
	}

	if to.Before(from) {
		h.badRequest(w, r, errors.New("'to' date is before 'from' date"))
		return
	}
	if err := utils.ValidateBookingWindow(from, now, h.config.Booking.HorizonDays); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateBookingWindow(to, now, h.config.Booking.HorizonDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	bookedCounts, err := h.repository.GetBookedCounts(st.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots := h.alloc.ComputeAvailability(bookedCounts, st.SlotCapacity, utils.DateRange(from, to))

	h.successResponse(w, r, "fetched availability", slots)
}

func (h *Handler) UpdateServiceType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName  *string `json:"displayName"`
		SlotCapacity *int32  `json:"slotCapacity" validate:"omitempty,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := r.Context().Value(ServiceTypeCtx).(*domain.ServiceType)

	if req.DisplayName != nil {
		st.DisplayName = *req.DisplayName
	}
	if req.SlotCapacity != nil {
		st.SlotCapacity = *req.SlotCapacity
	}

	if err := h.repository.UpdateServiceType(st); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update service type, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "service type updated", st)
}

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dotr-dev/vehicle-booking/backend/internal/allocator"
	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
	"github.com/dotr-dev/vehicle-booking/backend/internal/metrics"
	"github.com/dotr-dev/vehicle-booking/backend/internal/repository"
	"github.com/dotr-dev/vehicle-booking/backend/internal/utils"
)

// orderedServices filters the canonical service sequence down to the
// requested set, so the allocation pipeline always runs in precedence
// order no matter how the caller ordered the request.
func orderedServices(requested []string) []domain.ServiceName {
	wanted := make(map[string]bool, len(requested))
	for _, s := range requested {
		wanted[s] = true
	}

	ordered := make([]domain.ServiceName, 0, len(requested))
	for _, name := range domain.ServiceOrder {
		if wanted[string(name)] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

func sumDistribution(entries []allocator.Distribution) int32 {
	var total int32
	for _, entry := range entries {
		total += entry.VehicleCount
	}
	return total
}

// SuggestDistribution proposes a slot distribution for the requested
// services. The first service is filled greedily; each later service is
// allocated per cohort so that every vehicle group visits it strictly
// after its slot at the previous service.
func (h *Handler) SuggestDistribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleCount int32    `json:"vehicleCount" validate:"required,min=1"`
		Services     []string `json:"services" validate:"required,min=1,dive,oneof=weighing inspection registration"`
		FromDate     string   `json:"fromDate" validate:"required"`
		ToDate       string   `json:"toDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.VehicleCount > int32(h.config.Booking.MaxVehiclesPerCall) {
		h.errorResponse(w, r, "vehicle count exceeds the per-appointment limit")
		return
	}

	from, err := utils.ParseBookingDate(req.FromDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	to, err := utils.ParseBookingDate(req.ToDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if to.Before(from) {
		h.badRequest(w, r, errors.New("'toDate' is before 'fromDate'"))
		return
	}

	now := time.Now()
	if err := utils.ValidateBookingWindow(from, now, h.config.Booking.HorizonDays); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateBookingWindow(to, now, h.config.Booking.HorizonDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dates := utils.DateRange(from, to)
	suggestion := make(map[string][]allocator.Distribution)

	var previous []allocator.Distribution
	for i, name := range orderedServices(req.Services) {
		st, err := h.repository.GetServiceTypeByName(name)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		bookedCounts, err := h.repository.GetBookedCounts(st.ID, from, to)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		slots := h.alloc.ComputeAvailability(bookedCounts, st.SlotCapacity, dates)

		var entries []allocator.Distribution
		if i == 0 {
			entries = h.alloc.Greedy(req.VehicleCount, slots)
			if sumDistribution(entries) < req.VehicleCount {
				metrics.SuggestionsInfeasible.Inc()
				h.errorResponse(w, r, "not enough capacity for "+string(name)+" in the requested date range")
				return
			}
		} else {
			// each slot of the previous service becomes a cohort that
			// must book strictly later here
			groups := make([]allocator.GroupConstraint, 0, len(previous))
			for j, prev := range previous {
				groups = append(groups, allocator.GroupConstraint{
					Group:          int32(j + 1),
					VehicleCount:   prev.VehicleCount,
					ConstraintDate: prev.Date,
					ConstraintTime: prev.TimeLabel,
				})
			}

			entries = h.alloc.Constrained(groups, slots, st.SlotCapacity)
			if entries == nil {
				metrics.SuggestionsInfeasible.Inc()
				h.errorResponse(w, r, "no feasible schedule for "+string(name)+" after the preceding service, try a wider date range")
				return
			}
		}

		suggestion[string(name)] = entries
		previous = entries
	}

	h.successResponse(w, r, "computed suggestion", suggestion)
}

// CreateAppointment submits a booking with an explicit per-service slot
// distribution. The distribution is validated against the precedence
// ordering and a fresh availability snapshot, then persisted under the
// transactional capacity check.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	type bookingRequest struct {
		Service      string `json:"service" validate:"required,oneof=weighing inspection registration"`
		Date         string `json:"date" validate:"required"`
		TimeLabel    string `json:"timeLabel" validate:"required"`
		VehicleCount int32  `json:"vehicleCount" validate:"required,min=1"`
	}
	var req struct {
		ApplicantName    string           `json:"applicantName" validate:"required"`
		OrganizationName string           `json:"organizationName" validate:"required"`
		Email            string           `json:"email" validate:"required,email"`
		Phone            string           `json:"phone" validate:"required"`
		VehicleCount     int32            `json:"vehicleCount" validate:"required,min=1"`
		Bookings         []bookingRequest `json:"bookings" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.VehicleCount > int32(h.config.Booking.MaxVehiclesPerCall) {
		h.errorResponse(w, r, "vehicle count exceeds the per-appointment limit")
		return
	}

	now := time.Now()
	byService := make(map[string][]allocator.BookingSlot)
	for _, b := range req.Bookings {
		date, err := utils.ParseBookingDate(b.Date)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := utils.ValidateTimeLabel(b.TimeLabel); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := utils.ValidateBookingWindow(date, now, h.config.Booking.HorizonDays); err != nil {
			h.badRequest(w, r, err)
			return
		}

		byService[b.Service] = append(byService[b.Service], allocator.BookingSlot{
			Date:         date,
			TimeLabel:    b.TimeLabel,
			VehicleCount: b.VehicleCount,
		})
	}

	serviceOrder := make([]string, 0, len(domain.ServiceOrder))
	for _, name := range domain.ServiceOrder {
		serviceOrder = append(serviceOrder, string(name))
	}
	if violation := h.alloc.ValidateOrdering(byService, serviceOrder); violation != nil {
		h.errorResponse(w, r, violation.Error())
		return
	}

	// validate each service's distribution against a fresh snapshot, and
	// resolve service names to IDs along the way
	appt := &domain.Appointment{
		Code:             utils.GenerateReferenceCode(),
		ApplicantName:    req.ApplicantName,
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Phone:            req.Phone,
		VehicleCount:     req.VehicleCount,
		Status:           domain.StatusPending,
	}

	for _, name := range domain.ServiceOrder {
		requested, ok := byService[string(name)]
		if !ok {
			continue
		}

		st, err := h.repository.GetServiceTypeByName(name)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		from, to := requested[0].Date, requested[0].Date
		for _, slot := range requested[1:] {
			if slot.Date.Before(from) {
				from = slot.Date
			}
			if slot.Date.After(to) {
				to = slot.Date
			}
		}

		bookedCounts, err := h.repository.GetBookedCounts(st.ID, from, to)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		slots := h.alloc.ComputeAvailability(bookedCounts, st.SlotCapacity, utils.DateRange(from, to))

		entries := make([]allocator.Distribution, 0, len(requested))
		for _, slot := range requested {
			entries = append(entries, allocator.Distribution{
				Date:         slot.Date,
				TimeLabel:    slot.TimeLabel,
				VehicleCount: slot.VehicleCount,
			})
		}
		if err := h.alloc.ValidateDistribution(entries, req.VehicleCount, slots); err != nil {
			h.errorResponse(w, r, string(name)+": "+err.Error())
			return
		}

		for _, slot := range requested {
			appt.Bookings = append(appt.Bookings, domain.ServiceBooking{
				ServiceTypeID: st.ID,
				Date:          slot.Date,
				TimeLabel:     slot.TimeLabel,
				VehicleCount:  slot.VehicleCount,
			})
		}
	}

	if err := h.repository.CreateAppointment(appt); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, repository.ErrSlotCapacityExceeded):
			h.errorResponse(w, r, err.Error()+", please refresh availability and retry")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "appointments_code_key":
			h.errorResponse(w, r, "could not create appointment, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	metrics.AppointmentsCreated.Inc()

	lines := make([]domain.BookingMailLine, 0, len(appt.Bookings))
	for _, b := range req.Bookings {
		lines = append(lines, domain.BookingMailLine{
			Service:      b.Service,
			Date:         b.Date,
			TimeLabel:    b.TimeLabel,
			VehicleCount: b.VehicleCount,
		})
	}
	mailMessage := domain.MailMessage{
		Type: "booking_confirmation",
		To:   appt.Email,
		Data: domain.BookingConfirmationMailData{
			ApplicantName: appt.ApplicantName,
			Code:          appt.Code,
			VehicleCount:  appt.VehicleCount,
			Bookings:      lines,
		},
	}
	if err := h.queueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointment created", appt)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	h.successResponse(w, r, "fetched appointment", appt)
}

// CancelAppointment lets an applicant cancel their own appointment. The
// request must carry the email the appointment was booked with.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	if req.Email != appt.Email {
		h.errorResponse(w, r, "email does not match this appointment")
		return
	}
	if appt.Status == domain.StatusCancelled {
		h.errorResponse(w, r, "appointment is already cancelled")
		return
	}
	if appt.Status == domain.StatusCompleted {
		h.errorResponse(w, r, "completed appointments cannot be cancelled")
		return
	}

	appt.Status = domain.StatusCancelled
	if err := h.repository.UpdateAppointmentStatus(appt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not cancel appointment, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	metrics.AppointmentsCancelled.Inc()

	mailMessage := domain.MailMessage{
		Type: "booking_cancelled",
		To:   appt.Email,
		Data: domain.BookingCancelledMailData{
			ApplicantName: appt.ApplicantName,
			Code:          appt.Code,
		},
	}
	if err := h.queueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointment cancelled", appt)
}

func (h *Handler) GetAppointmentsByDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.badRequest(w, r, errors.New("missing 'date' query parameter"))
		return
	}

	date, err := utils.ParseBookingDate(raw)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// optional filter down to appointments booking a specific service
	if service := r.URL.Query().Get("service"); service != "" {
		st, err := h.repository.GetServiceTypeByName(domain.ServiceName(service))
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "unknown service")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		filtered := make([]*domain.Appointment, 0, len(appointments))
		for _, appt := range appointments {
			for _, b := range appt.Bookings {
				if b.ServiceTypeID == st.ID {
					filtered = append(filtered, appt)
					break
				}
			}
		}
		appointments = filtered
	}

	h.successResponse(w, r, "fetched appointments", appointments)
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	wasActive := appt.Status != domain.StatusCancelled
	appt.Status = domain.AppointmentStatus(req.Status)

	if err := h.repository.UpdateAppointmentStatus(appt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update appointment, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if appt.Status == domain.StatusCancelled && wasActive {
		metrics.AppointmentsCancelled.Inc()

		mailMessage := domain.MailMessage{
			Type: "booking_cancelled",
			To:   appt.Email,
			Data: domain.BookingCancelledMailData{
				ApplicantName: appt.ApplicantName,
				Code:          appt.Code,
			},
		}
		if err := h.queueMail(mailMessage); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "appointment status updated", appt)
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/allocator"
	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

// GetBookedCounts aggregates the committed vehicle counts per slot for one
// service over [from, to]. Cancelled appointments release their capacity
// and are excluded. The result is the occupancy snapshot handed to the
// allocator.
func (r *Repository) GetBookedCounts(serviceTypeID int64, from, to time.Time) (map[allocator.SlotKey]int32, error) {
	query := `
		SELECT sb.booking_date, sb.time_label, COALESCE(SUM(sb.vehicle_count), 0)
		FROM service_bookings sb
		JOIN appointments a ON a.id = sb.appointment_id
		WHERE sb.service_type_id = $1
			AND sb.booking_date BETWEEN $2 AND $3
			AND a.status <> 'cancelled'
		GROUP BY sb.booking_date, sb.time_label
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, serviceTypeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[allocator.SlotKey]int32)
	for rows.Next() {
		var (
			date  time.Time
			label string
			total int32
		)
		if err := rows.Scan(&date, &label, &total); err != nil {
			return nil, err
		}
		counts[allocator.SlotKey{Date: domain.NormalizeDate(date), TimeLabel: label}] = total
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CreateAppointment persists an appointment and its service bookings in a
// single transaction. The involved service-type rows are locked in
// ascending ID order, then every requested slot is re-checked against the
// committed sums, so two concurrent submissions for the same slot cannot
// both pass the capacity check.
func (r *Repository) CreateAppointment(appt *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	serviceIDs := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, booking := range appt.Bookings {
		if !seen[booking.ServiceTypeID] {
			seen[booking.ServiceTypeID] = true
			serviceIDs = append(serviceIDs, booking.ServiceTypeID)
		}
	}
	sort.Slice(serviceIDs, func(i, j int) bool { return serviceIDs[i] < serviceIDs[j] })

	capacities := make(map[int64]int32, len(serviceIDs))
	for _, id := range serviceIDs {
		var capacity int32
		query := `SELECT slot_capacity FROM service_types WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRowContext(ctx, query, id).Scan(&capacity); err != nil {
			return err
		}
		capacities[id] = capacity
	}

	type slot struct {
		serviceTypeID int64
		date          time.Time
		label         string
	}
	requested := make(map[slot]int32)
	for _, booking := range appt.Bookings {
		requested[slot{booking.ServiceTypeID, booking.Date, booking.TimeLabel}] += booking.VehicleCount
	}

	for s, count := range requested {
		var booked int32
		query := `
			SELECT COALESCE(SUM(sb.vehicle_count), 0)
			FROM service_bookings sb
			JOIN appointments a ON a.id = sb.appointment_id
			WHERE sb.service_type_id = $1
				AND sb.booking_date = $2
				AND sb.time_label = $3
				AND a.status <> 'cancelled'
		`
		if err := tx.QueryRowContext(ctx, query, s.serviceTypeID, s.date, s.label).Scan(&booked); err != nil {
			return err
		}
		if booked+count > capacities[s.serviceTypeID] {
			return fmt.Errorf("%w: %s %s", ErrSlotCapacityExceeded, s.date.Format(domain.DateFormat), s.label)
		}
	}

	query := `
		INSERT INTO appointments (code, applicant_name, organization_name, email, phone, vehicle_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`
	args := []any{appt.Code, appt.ApplicantName, appt.OrganizationName, appt.Email, appt.Phone, appt.VehicleCount, appt.Status}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &appt.CreatedAt, &appt.Version); err != nil {
		return err
	}

	for i := range appt.Bookings {
		booking := &appt.Bookings[i]
		query := `
			INSERT INTO service_bookings (appointment_id, service_type_id, booking_date, time_label, vehicle_count)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		args := []any{appt.ID, booking.ServiceTypeID, booking.Date, booking.TimeLabel, booking.VehicleCount}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetAppointmentByCode(code string) (*domain.Appointment, error) {
	query := `
		SELECT id, applicant_name, organization_name, email, phone, vehicle_count, status, created_at, version
		FROM appointments WHERE code = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	appt := &domain.Appointment{
		Code: code,
	}

	dst := []any{&appt.ID, &appt.ApplicantName, &appt.OrganizationName, &appt.Email, &appt.Phone, &appt.VehicleCount, &appt.Status, &appt.CreatedAt, &appt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, code).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadBookings(ctx, appt); err != nil {
		return nil, err
	}

	return appt, nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT code, applicant_name, organization_name, email, phone, vehicle_count, status, created_at, version
		FROM appointments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	appt := &domain.Appointment{
		ID: id,
	}

	dst := []any{&appt.Code, &appt.ApplicantName, &appt.OrganizationName, &appt.Email, &appt.Phone, &appt.VehicleCount, &appt.Status, &appt.CreatedAt, &appt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadBookings(ctx, appt); err != nil {
		return nil, err
	}

	return appt, nil
}

func (r *Repository) loadBookings(ctx context.Context, appt *domain.Appointment) error {
	query := `
		SELECT id, service_type_id, booking_date, time_label, vehicle_count
		FROM service_bookings
		WHERE appointment_id = $1
		ORDER BY booking_date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, appt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	appt.Bookings = make([]domain.ServiceBooking, 0)
	for rows.Next() {
		var booking domain.ServiceBooking
		dst := []any{&booking.ID, &booking.ServiceTypeID, &booking.Date, &booking.TimeLabel, &booking.VehicleCount}
		if err := rows.Scan(dst...); err != nil {
			return err
		}
		booking.Date = domain.NormalizeDate(booking.Date)
		appt.Bookings = append(appt.Bookings, booking)
	}

	return rows.Err()
}

// GetAppointmentsByDate lists appointments holding at least one booking on
// the given date, bookings included.
func (r *Repository) GetAppointmentsByDate(date time.Time) ([]*domain.Appointment, error) {
	query := `
		SELECT DISTINCT a.id, a.code, a.applicant_name, a.organization_name, a.email, a.phone, a.vehicle_count, a.status, a.created_at, a.version
		FROM appointments a
		JOIN service_bookings sb ON sb.appointment_id = a.id
		WHERE sb.booking_date = $1
		ORDER BY a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt := &domain.Appointment{}
		dst := []any{&appt.ID, &appt.Code, &appt.ApplicantName, &appt.OrganizationName, &appt.Email, &appt.Phone, &appt.VehicleCount, &appt.Status, &appt.CreatedAt, &appt.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, appt := range appointments {
		if err := r.loadBookings(ctx, appt); err != nil {
			return nil, err
		}
	}

	return appointments, nil
}

func (r *Repository) UpdateAppointmentStatus(appt *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, appt.Status, appt.ID, appt.Version).Scan(&appt.Version); err != nil {
		return err
	}

	return nil
}

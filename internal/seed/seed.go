package seed

import (
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
	"github.com/dotr-dev/vehicle-booking/backend/internal/repository"
	"github.com/dotr-dev/vehicle-booking/backend/internal/utils"
)

// SeedAppointments inserts n random appointments spread over the booking
// horizon. Every appointment books all three services in precedence order,
// so the generated data always passes the ordering check. Appointments
// rejected by the capacity check are skipped and logged, heavily seeded
// days simply fill up.
func SeedAppointments(repo *repository.Repository, horizonDays, n int) {
	serviceTypes := make(map[domain.ServiceName]*domain.ServiceType, len(domain.ServiceOrder))
	for _, name := range domain.ServiceOrder {
		st, err := repo.GetServiceTypeByName(name)
		if err != nil {
			slog.Error("failed to load service type", slog.String("service", string(name)), slog.String("error", err.Error()))
			return
		}
		serviceTypes[name] = st
	}

	today := domain.NormalizeDate(time.Now())
	cnt := 0

	for i := 0; i < n; i++ {
		fullName := utils.GenerateRandomFullName()
		vehicleCount := int32(rand.Intn(4) + 1)

		appt := &domain.Appointment{
			Code:             utils.GenerateReferenceCode(),
			ApplicantName:    fullName,
			OrganizationName: utils.GenerateRandomOrganization(),
			Email:            strings.ToLower(strings.ReplaceAll(fullName, " ", ".")) + "@example.com",
			Phone:            utils.GenerateRandomPhone(),
			VehicleCount:     vehicleCount,
			Status:           domain.StatusPending,
		}

		// start at a random day, leave room to push later services forward
		day := rand.Intn(max(horizonDays-2, 1)) + 1
		labelIdx := rand.Intn(len(domain.TimeLabels))

		for _, name := range domain.ServiceOrder {
			appt.Bookings = append(appt.Bookings, domain.ServiceBooking{
				ServiceTypeID: serviceTypes[name].ID,
				Date:          today.AddDate(0, 0, day),
				TimeLabel:     domain.TimeLabels[labelIdx],
				VehicleCount:  vehicleCount,
			})

			// next service goes strictly later: the following label, or
			// the first label of the next day
			labelIdx++
			if labelIdx >= len(domain.TimeLabels) {
				labelIdx = 0
				day++
			}
		}

		if err := repo.CreateAppointment(appt); err != nil {
			slog.Error("failed to insert appointment", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("inserted appointments", slog.Int("count", cnt))
}

// SeedUsers inserts n random staff accounts sharing the configured seed
// password.
func SeedUsers(repo *repository.Repository, password, emailDomain string, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("failed to generate random user", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert user", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("inserted users", slog.Int("count", cnt))
}

package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/dotr-dev/vehicle-booking/backend/internal/allocator"
	"github.com/dotr-dev/vehicle-booking/backend/internal/config"
	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
	"github.com/dotr-dev/vehicle-booking/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	alloc       *allocator.Allocator
	limiter     *rateLimiter

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		alloc:       allocator.New(domain.TimeLabels),
		limiter: newRateLimiter(
			cfg.RateLimit.Burst,
			cfg.RateLimit.RefillPerMin,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second,
		),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.metrics)

	h.Mux.Handle("/metrics", promhttp.Handler())

	// public booking flow, rate limited per client IP
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.rateLimit)

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.GetAllServiceTypes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.serviceType)
				r.Get("/availability", h.GetServiceAvailability)
			})
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/suggest", h.SuggestDistribution)
			r.Post("/", h.CreateAppointment)
			r.Route("/{code}", func(r chi.Router) {
				r.Use(h.appointment)
				r.Get("/", h.GetAppointment)
				r.Post("/cancel", h.CancelAppointment)
			})
		})
	})

	// staff authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// staff portal, login required
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/service-types/{id}", func(r chi.Router) {
			r.Use(h.serviceType)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateServiceType)
		})

		r.Route("/staff/appointments", func(r chi.Router) {
			r.Get("/", h.GetAppointmentsByDate)
			r.Route("/{code}", func(r chi.Router) {
				r.Use(h.appointment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor, domain.RoleAdmin})).Patch("/status", h.UpdateAppointmentStatus)
			})
		})
	})
}

package repository

import (
	"database/sql"
	"errors"

	"github.com/dotr-dev/vehicle-booking/backend/internal/config"
)

// ErrSlotCapacityExceeded is returned when a booking submission would push
// a slot past its configured capacity. The check runs inside the insert
// transaction with the service-type row locked, so it is the authoritative
// one; availability figures shown to the client are advisory.
var ErrSlotCapacityExceeded = errors.New("slot capacity exceeded")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

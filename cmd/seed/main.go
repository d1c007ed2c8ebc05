package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/config"
	"github.com/dotr-dev/vehicle-booking/backend/internal/repository"
	"github.com/dotr-dev/vehicle-booking/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: insert random staff users, 2: insert random appointments)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not establish a connection, ping to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("invalid user count")
			return
		}

		emailDomain := cfg.Email.From
		if at := strings.LastIndex(emailDomain, "@"); at >= 0 {
			emailDomain = emailDomain[at+1:]
		}
		seed.SeedUsers(repo, cfg.Seed.User.Password, emailDomain, n)
	case 2:
		if n <= 0 {
			slog.Error("invalid appointment count")
			return
		}

		seed.SeedAppointments(repo, cfg.Booking.HorizonDays, n)
	default:
		slog.Error("unknown operation")
	}
}

package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/screenhouse/cinema-api/internal/api"
	"github.com/screenhouse/cinema-api/internal/config"
	"github.com/screenhouse/cinema-api/internal/db"
	"github.com/screenhouse/cinema-api/internal/logger"
	"github.com/screenhouse/cinema-api/internal/repository"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
	"github.com/screenhouse/cinema-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	sweeper := service.NewLifecycleService(
		repository.NewSeanceRepository(dao.NewSeanceDAO(postgresDB)),
		repository.NewHallRepository(dao.NewHallDAO(postgresDB)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx, conf.Lifecycle.SweepInterval)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

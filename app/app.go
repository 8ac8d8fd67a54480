package app

import (
	"os"
	"os/signal"
	"syscall"

	"procurement-bidding-api/internal/config"
	"procurement-bidding-api/internal/controller"
	"procurement-bidding-api/internal/metrics"
	"procurement-bidding-api/internal/repo"
	"procurement-bidding-api/internal/service"
	"procurement-bidding-api/pkg/http_server"
	"procurement-bidding-api/pkg/logger"
	"procurement-bidding-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func runMigrations(postgresDB *postgres.Postgres, cfg *config.Config, log logger.Logger) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: cfg.Postgres.DatabaseName})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(cfg.Postgres.MigrationsURL, cfg.Postgres.DatabaseName, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Infof("no change made by migration scripts")

			return nil
		}

		return err
	}

	return nil
}

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New("app", cfg.Logging.Level, cfg.Logging.Pretty)

	log.Infof("connecting database")
	postgresDB, err := postgres.NewDB(cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer postgresDB.Close()

	log.Infof("running migrations")
	if err := runMigrations(postgresDB, cfg, log); err != nil {
		return err
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, logger.New("service", cfg.Logging.Level, cfg.Logging.Pretty), m)

	handler := echo.New()
	log.Infof("setting up routes")
	controller.SetupRoutesHandlers(handler, services)
	handler.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Infof("starting server on %s", cfg.Server.Address)
	httpServer := http_server.New(handler, cfg.Server.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Infof("got signal: %s", s.String())
	case err = <-httpServer.Notify():
		log.Errorf("server notify: %s", err)
	}

	log.Infof("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		return err
	}
	log.Infof("shutdown complete")

	return nil
}

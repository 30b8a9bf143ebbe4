package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controlling_servo/internal/driver"
	"controlling_servo/internal/handlers"
	"controlling_servo/internal/logger"
	"controlling_servo/internal/models"
	"controlling_servo/internal/repository"
	"controlling_servo/internal/repository/db"
	"controlling_servo/internal/server"
	"controlling_servo/internal/service"
	"controlling_servo/internal/wifi"

	"github.com/spf13/viper"

	_ "controlling_servo/docs" // swagger spec registration
)

const (
	defaultWatchdogTick = 500 * time.Millisecond
	defaultDBPath       = "servo.db"
	defaultPort         = "80"
	shutdownGrace       = 10 * time.Second
)

// @title        Servo Command Service
// @version      1.0
// @description  HTTP control surface for a 180° tracking servo with a safety-timeout watchdog.
func main() {
	// load config.yml first so the log level can come from it
	cfgErr := loadConfig()

	log := logger.Get(logLevel())
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// servo driver
	drv, err := driver.New(driverConfig())
	if err != nil {
		log.Fatalw("failed to init servo driver", "err", err)
	}
	defer func() {
		if cerr := drv.Close(); cerr != nil {
			log.Errorw("failed to close servo driver", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	rssi := wifi.New(viper.GetString("wifi.interface"))
	services := service.NewService(repos, drv, rssi, log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logPreviousState(ctx, repos, log)

	// home the servo before accepting commands, as the firmware does at boot
	if st, err := services.Servo.Home(ctx, models.EventStartup, "servo homed on start"); err != nil {
		log.Fatalw("failed to home servo", "err", err)
	} else {
		log.Infow("servo initialized", "position", st.Position)
	}

	// start watchdog sweep
	go services.Watchdog.Run(ctx, watchdogTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, services, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

// driverConfig builds the servo driver settings from configuration.
func driverConfig() driver.Config {
	return driver.Config{
		Mode:     viper.GetString("servo.driver"),
		Address:  viper.GetString("servo.address"),
		SlaveID:  byte(viper.GetUint("servo.slave_id")),
		Register: uint16(viper.GetUint("servo.register")),
		BaudRate: viper.GetInt("servo.baud_rate"),
	}
}

func watchdogTick() time.Duration {
	if ms := viper.GetInt("watchdog.tick_ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultWatchdogTick
}

// logPreviousState surfaces where the servo was left before the last stop.
// Purely informational: the process always re-homes on start.
func logPreviousState(ctx context.Context, repos *repository.Repository, log *logger.Logger) {
	prev, err := repos.StateRepo.Load(ctx)
	if err != nil {
		log.Warnw("failed to load previous state", "err", err)
		return
	}
	if prev.State != "" {
		log.Infow("previous persisted state", "position", prev.Position, "state", prev.State, "updated_at", prev.UpdatedAt)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, recenters the servo and
// performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, services *service.Service, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	// leave the hardware in the safe position
	if _, err := services.Servo.Home(ctx, models.EventRecenter, "servo homed on shutdown"); err != nil {
		log.Errorw("failed to home servo on shutdown", "err", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

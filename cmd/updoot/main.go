package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/updoot/internal/db"
	"gitlab.com/ranfdev/updoot/internal/models"
	"gitlab.com/ranfdev/updoot/internal/routes"
)

const usage = `Usage:
	- start
	- migrate [up/down/drop]
`

func main() {
	if len(os.Args) == 1 {
		fmt.Println(usage)
		return
	}
	envConfig, err := models.ReadEnvConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	switch os.Args[1] {
	case "start":
		server := UpdootServer{EnvConfig: envConfig}
		server.Setup()
		server.Run()
	case "migrate":
		if len(os.Args) < 3 {
			fmt.Println(usage)
			return
		}
		switch os.Args[2] {
		case "up":
			err = db.MigrateUp(envConfig.DatabaseURL)
		case "down":
			err = db.MigrateDown(envConfig.DatabaseURL)
		case "drop":
			err = db.Drop(envConfig.DatabaseURL)
		default:
			fmt.Println(usage)
			return
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Done")
	default:
		fmt.Println(usage)
	}
}

type UpdootServer struct {
	models.EnvConfig
	addr       string
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	database   db.SharedDB
	registry   *prometheus.Registry
}

func (server *UpdootServer) setupLogger() {
	var writer io.Writer
	if server.Debug {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
	} else {
		writer = os.Stdout
	}
	level, err := zerolog.ParseLevel(server.LogLevel)
	if err != nil || server.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	server.logger = zerolog.New(writer).With().Timestamp().Str("service", "updoot").Logger()
}
func (server *UpdootServer) setupDB() {
	err := db.MigrateUp(server.DatabaseURL)
	if err != nil {
		server.logger.Fatal().Err(err).Send()
	}
	database, err := db.Connect(&server.EnvConfig, server.logger)
	if err != nil {
		server.logger.Fatal().AnErr("Connecting to db", err).Send()
	}
	server.database = database
}
func (server *UpdootServer) setupRouter() {
	server.registry = prometheus.NewRegistry()
	server.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := routes.NewMetrics(server.registry)
	metrics.RegisterPool(server.database.Stat)
	server.router = routes.NewRouter(&server.database, server.logger, metrics)
}
func (server *UpdootServer) setupHttpServer() {
	server.addr = fmt.Sprintf(":%s", server.Port)
	server.httpServer = &http.Server{
		Addr:         server.addr,
		Handler:      server.router,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
}
func (server *UpdootServer) Setup() {
	server.setupLogger()
	server.setupDB()
	server.setupRouter()
	server.setupHttpServer()
}
func (server *UpdootServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		server.logger.Error().
			Err(err).
			Msg("Error shutting down")
	}
	server.database.Close()
}
func (server *UpdootServer) Run() {
	server.logger.Info().Str("server_address", server.addr).Msg("Server is starting")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		err := server.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			server.logger.Fatal().Err(err).Msg("Server failed")
		}
	}()
	server.logger.Info().Msg("Ready")

	<-ctx.Done()
	stop() // Stop listening for signals
	server.logger.Info().Msg("Shutting down gracefully")
	server.Shutdown()
}

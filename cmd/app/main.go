package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tolkbook/cmd"
	httpin "tolkbook/internal/adapters/in/http"
	"tolkbook/internal/adapters/out/postgres/jobrepo"
	"tolkbook/internal/adapters/out/postgres/languagerepo"
	"tolkbook/internal/adapters/out/postgres/userrepo"
	"tolkbook/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(configs.Environment)
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&jobrepo.AssignmentDTO{},
		&jobrepo.AuditDTO{},
		&userrepo.UserDTO{},
		&languagerepo.LanguageDTO{},
	); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	connection, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		logger.Error("Failed to connect to message broker", "error", err)
		os.Exit(1)
	}
	defer connection.Close()

	channel, err := connection.Channel()
	if err != nil {
		logger.Error("Failed to open broker channel", "error", err)
		os.Exit(1)
	}
	defer channel.Close()

	app, err := cmd.NewCompositionRoot(configs, gormDB, channel, logger)
	if err != nil {
		logger.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	jobManager := jobs.NewJobManager(app.CreateExpireJobsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

// newLogger picks the slog handler for the environment: colorized console
// output in dev, JSON everywhere else.
func newLogger(environment string) *slog.Logger {
	if environment == "dev" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateJobCommandHandler(),
		app.CreateUpdateJobCommandHandler(),
		app.CreateAcceptJobCommandHandler(),
		app.CreateAcceptJobByIDCommandHandler(),
		app.CreateCancelJobCommandHandler(),
		app.CreateStartJobCommandHandler(),
		app.CreateEndJobCommandHandler(),
		app.CreateCustomerNotCallCommandHandler(),
		app.CreateReopenJobCommandHandler(),
		app.CreateResendPushCommandHandler(),
		app.CreateResendSMSCommandHandler(),
		app.CreateSetJobContactCommandHandler(),
		app.CreateGetPotentialJobsQueryHandler(),
		app.CreateListJobsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/config"
	deliveryHttp "github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/handler"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/cache"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/cloud"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/database"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/messaging"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/storage"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/jwt"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config         *config.Config
	DB             *gorm.DB
	RedisClient    *redis.Client
	AlertPublisher service.AlertPublisher
	Server         *http.Server
	Log            *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	log := NewLogger(cfg.App)
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// AWS is only needed by the SQS broker and the report bucket
	var awsCfg aws.Config
	if cfg.Messaging.AlertBroker == config.BrokerSQS || cfg.AWS.ReportBucket != "" {
		awsCfg, err = cloud.LoadAWSConfig(context.Background(), cfg.AWS)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	publisher, err := newAlertPublisher(cfg.Messaging, awsCfg, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.AlertPublisher = publisher

	app.Server = initializeServer(cfg, db, redisClient, publisher, newReportStorage(cfg.AWS, awsCfg, log), log)

	return app, nil
}

// NewLogger configures the logrus logger
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func newAlertPublisher(cfg config.MessagingConfig, awsCfg aws.Config, log *logrus.Logger) (service.AlertPublisher, error) {
	switch cfg.AlertBroker {
	case config.BrokerKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required for the kafka alert broker")
		}
		log.Infof("Alert broker: kafka topic %s", cfg.KafkaAlertTopic)
		return messaging.NewKafkaAlertPublisher(cfg.KafkaBrokers, cfg.KafkaAlertTopic), nil
	case config.BrokerSQS:
		if cfg.SQSAlertQueue == "" {
			return nil, errors.New("SQS_ALERT_QUEUE_URL is required for the sqs alert broker")
		}
		log.Info("Alert broker: sqs")
		return messaging.NewSQSAlertPublisher(awsCfg, cfg.SQSAlertQueue), nil
	case config.BrokerNone, "":
		log.Info("Alert broker: log only")
		return service.NewLogAlertPublisher(log), nil
	}
	return nil, fmt.Errorf("unknown alert broker %q", cfg.AlertBroker)
}

// newReportStorage returns nil when no bucket is configured, which disables exports.
func newReportStorage(cfg config.AWSConfig, awsCfg aws.Config, log *logrus.Logger) service.ReportStorage {
	if cfg.ReportBucket == "" {
		log.Info("Report storage disabled: S3_REPORT_BUCKET is not set")
		return nil
	}
	return storage.NewS3Storage(awsCfg, cfg.ReportBucket)
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	publisher service.AlertPublisher,
	reportStorage service.ReportStorage,
	log *logrus.Logger,
) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	sessions := cache.NewSessionStore(redisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	hospitalRepo := repository.NewHospitalRepository()
	equipmentRepo := repository.NewEquipmentRepository()
	medicineRepo := repository.NewMedicineStockRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	outbreakRepo := repository.NewDiseaseOutbreakRepository()
	campaignRepo := repository.NewVaccinationCampaignRepository()
	alertRepo := repository.NewHealthAlertRepository()
	metricsRepo := repository.NewHealthMetricsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	statsCache := service.NewStatsCache(redisClient, log, cfg.Stats.CacheTTL)
	broadcaster := service.NewAlertBroadcastService(publisher, log)
	reportService := service.NewReportService(reportStorage, cfg.AWS.PresignExpiry, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, patientProfileRepo, jwtService, sessions, auditService)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, userRepo, doctorProfileRepo, auditService, sessions, statsCache)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, patientProfileRepo, auditService)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, auditService, statsCache)
	equipmentUsecase := usecase.NewEquipmentUsecase(db, log, equipmentRepo, auditService, statsCache)
	medicineUsecase := usecase.NewMedicineStockUsecase(db, log, medicineRepo, auditService, statsCache)
	outbreakUsecase := usecase.NewDiseaseOutbreakUsecase(db, log, outbreakRepo, auditService, statsCache)
	campaignUsecase := usecase.NewVaccinationCampaignUsecase(db, log, campaignRepo, auditService, statsCache)
	alertUsecase := usecase.NewHealthAlertUsecase(db, log, alertRepo, auditService, broadcaster)
	metricsUsecase := usecase.NewHealthMetricsUsecase(db, log, metricsRepo, auditService, reportService)
	dashboardUsecase := usecase.NewAdminDashboardUsecase(db, log, userRepo, hospitalRepo, equipmentRepo, medicineRepo, outbreakRepo, campaignRepo, statsCache)
	citizenUsecase := usecase.NewCitizenPortalUsecase(db, log, patientProfileRepo, doctorProfileRepo, appointmentRepo, medicalRecordRepo, alertRepo, outbreakRepo, campaignRepo, auditService)
	doctorPortalUsecase := usecase.NewDoctorPortalUsecase(db, log, doctorProfileRepo, patientProfileRepo, appointmentRepo, medicalRecordRepo, outbreakRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(doctorProfileUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientProfileUsecase, customValidator),
		Hospital:     handler.NewHospitalHandler(hospitalUsecase, customValidator),
		Inventory:    handler.NewInventoryHandler(equipmentUsecase, medicineUsecase, customValidator),
		Surveillance: handler.NewSurveillanceHandler(outbreakUsecase, campaignUsecase, alertUsecase, customValidator),
		Metrics:      handler.NewMetricsHandler(metricsUsecase, customValidator),
		Dashboard:    handler.NewDashboardHandler(dashboardUsecase),
		Citizen:      handler.NewCitizenHandler(citizenUsecase, customValidator),
		DoctorPortal: handler.NewDoctorPortalHandler(doctorPortalUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessions, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, log)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until it is shut down
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()
	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, broker)
func (app *App) Close() {
	if app.AlertPublisher != nil {
		if err := app.AlertPublisher.Close(); err != nil {
			app.Log.Warnf("Failed to close alert publisher: %+v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

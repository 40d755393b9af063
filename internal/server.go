package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/auth"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/config"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/db"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/middleware"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/misc"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/metrics"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/tracing"
	"github.com/seirrozyx11/sikadVoltz-sub000/internal/training"
)

const statusCacheTTL = 5 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	trainingService *training.Service
	sweeper         *training.Sweeper

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config            *config.Config
	VersionInfo       string
	AdminUsername     string
	AdminPasswordHash string
	DBUser            string
	DBPassword        string
	RedisPassword     string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.DBHost,
		DBPort:         params.Config.DBPort,
		DBName:         params.Config.DBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.Config.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.DBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("sikadvoltz", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, strconv.Itoa(params.Config.RedisPort)),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	otelShutdown, err := tracing.Setup(
		params.Config.TracingEnabled,
		"sikadvoltz-backend",
		params.Config.Environment,
	)
	if err != nil {
		return nil, err
	}

	trainingService := training.NewService(
		training.NewRepo(dbPool),
		training.NewStatusCache(rdb, statusCacheTTL),
		training.NewGenerator(settingsFromConfig(params.Config)),
		metricsManager,
	)

	sweepInterval := time.Duration(params.Config.SweepIntervalMinutes) * time.Minute
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Minute
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		trainingService: trainingService,
		sweeper: training.NewSweeper(
			trainingService,
			metricsManager,
			sweepInterval,
			params.Config.SweepWorkers,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// settingsFromConfig maps the config knobs onto the adjustment settings,
// keeping the defaults for anything left unset.
func settingsFromConfig(cfg *config.Config) training.AutoAdjustmentSettings {
	settings := training.DefaultAutoAdjustmentSettings()
	if cfg.MaxDailyHours > 0 {
		settings.MaxDailyHours = cfg.MaxDailyHours
	}
	if cfg.GracePeriodDays > 0 {
		settings.GracePeriodDays = cfg.GracePeriodDays
	}
	if cfg.WeeklyResetThreshold > 0 {
		settings.WeeklyResetThreshold = cfg.WeeklyResetThreshold
	}
	if cfg.RedistributionCapHours > 0 {
		settings.RedistributionCapHours = cfg.RedistributionCapHours
	}
	if cfg.PauseThreshold > 0 {
		settings.PauseThreshold = cfg.PauseThreshold
	}
	if cfg.EditUnlockThreshold > 0 {
		settings.EditUnlockThreshold = cfg.EditUnlockThreshold
	}
	return settings
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.config.RateLimitPerMinute)

	trainingHandler := training.NewHandler(s.trainingService)
	r.HandleFunc("/training/plan", trainingHandler.HandleGeneratePlan).
		Methods("POST", "OPTIONS").Name("generate-plan")
	r.HandleFunc("/training/plan/{accountId}", trainingHandler.HandleActivePlan).
		Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/training/plan/{accountId}/checkin", trainingHandler.HandleCheckIn).
		Methods("POST", "OPTIONS").Name("plan-checkin")
	r.HandleFunc("/training/plan/{accountId}/status", trainingHandler.HandleStatus).
		Methods("GET", "OPTIONS").Name("plan-status")
	r.HandleFunc("/training/plan/{accountId}/reset", trainingHandler.HandleResetPlan).
		Methods("POST", "OPTIONS").Name("plan-reset")
	r.HandleFunc("/training/plan/{accountId}/sessions/complete", trainingHandler.HandleCompleteSession).
		Methods("POST", "OPTIONS").Name("complete-session")
	r.HandleFunc("/training/plan/{accountId}/sessions/reschedule", trainingHandler.HandleRescheduleSession).
		Methods("POST", "OPTIONS").Name("reschedule-session")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.sweeper.Run(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-microblog/internal/handlers"
	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/metrics"
	"github.com/sbilibin2017/gw-microblog/internal/middlewares"
	"github.com/sbilibin2017/gw-microblog/internal/repositories"
	"github.com/sbilibin2017/gw-microblog/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	GRPCHost string
	GRPCPort string

	JWTSecretKey        string
	JWTExpSecond        int
	ResetTokenExpSecond int

	PostsPerPage int
}

// @title gw-microblog API
// @version 1.0.0
// @description Microblogging service: accounts, posts, follows and timelines
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, gRPC, logging, and JWT configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	cfg := &config{}
	ints := []struct {
		key string
		def string
		dst *int
	}{
		{"POSTGRES_PORT", "5432", &cfg.PGPort},
		{"POSTGRES_MAX_OPEN_CONNS", "16", &cfg.PGMaxOpenConns},
		{"POSTGRES_MAX_IDLE_CONNS", "8", &cfg.PGMaxIdleConns},
		{"REDIS_PORT", "6379", &cfg.RedisPort},
		{"REDIS_DB", "0", &cfg.RedisDB},
		{"REDIS_POOL_SIZE", "10", &cfg.RedisPoolSize},
		{"REDIS_MIN_IDLE_CONNS", "2", &cfg.RedisMinIdleConns},
		{"JWT_EXP_SECOND", "3600", &cfg.JWTExpSecond},
		{"RESET_TOKEN_EXP_SECOND", "600", &cfg.ResetTokenExpSecond},
		{"POSTS_PER_PAGE", "20", &cfg.PostsPerPage},
	}
	for _, i := range ints {
		v, err := strconv.Atoi(getEnv(i.key, i.def))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = v
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config, no brokers disables publishing
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "microblog.events")

	// gRPC config
	cfg.GRPCHost = getEnv("GRPC_HOST", "localhost")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")

	return cfg, nil
}

// newKafkaWriter returns nil when no brokers are configured.
func newKafkaWriter(cfg *config) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				logger.Log.Errorw("Failed to deliver events to Kafka", "count", len(msgs), "error", err)
			}
		},
	}
}

// newRouter wires handlers to routes. Every API route runs in its own transaction.
func newRouter(
	cfg *config,
	db *sqlx.DB,
	reg *prometheus.Registry,
	tokens *jwt.JWT,
	authService *services.AuthService,
	graphService *services.GraphService,
	postService *services.PostService,
	userService *services.UserService,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))
		r.Post("/register", handlers.NewRegisterHandler(authService))
		r.Post("/login", handlers.NewLoginHandler(authService))
		r.Post("/reset_password_request", handlers.NewResetPasswordRequestHandler(authService))
		r.Post("/reset_password", handlers.NewResetPasswordHandler(authService))
	})

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens))
		r.Use(middlewares.LastSeenMiddleware(userService))
		r.Use(middlewares.TxMiddleware(db))
		r.Get("/feed", handlers.NewFeedHandler(postService))
		r.Get("/explore", handlers.NewExploreHandler(postService))
		r.Post("/posts", handlers.NewCreatePostHandler(postService))
		r.Put("/users/me", handlers.NewUpdateProfileHandler(userService))
		r.Get("/users/{username}", handlers.NewProfileHandler(userService, postService))
		r.Post("/users/{username}/follow", handlers.NewFollowHandler(graphService))
		r.Post("/users/{username}/unfollow", handlers.NewUnfollowHandler(graphService))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}

// run initializes the logger, database, Redis, Kafka, gRPC health server, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer, optional
	var kafkaWriter services.KafkaWriter
	if w := newKafkaWriter(cfg); w != nil {
		kafkaWriter = w
		defer w.Close()
		logger.Log.Infof("Publishing events to Kafka topic %s", cfg.KafkaTopic)
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, events will not be published")
	}

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("metrics registration failed: %w", err)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)
	userReadRepo := repositories.NewUserReadRepository(db, txGetter)
	userWriteRepo := repositories.NewUserWriteRepository(db, txGetter)
	followReadRepo := repositories.NewFollowReadRepository(db, txGetter)
	followWriteRepo := repositories.NewFollowWriteRepository(db, txGetter)
	postReadRepo := repositories.NewPostReadRepository(db, txGetter)
	postWriteRepo := repositories.NewPostWriteRepository(db, txGetter)
	resetTokenRepo := repositories.NewResetTokenRepository(rdb)

	// Initialize services
	authService := services.NewAuthService(
		userReadRepo, userWriteRepo, tokens, resetTokenRepo, kafkaWriter,
		time.Duration(cfg.ResetTokenExpSecond)*time.Second,
	)
	graphService := services.NewGraphService(userReadRepo, followWriteRepo, followReadRepo, kafkaWriter)
	postService := services.NewPostService(postWriteRepo, postReadRepo, kafkaWriter, cfg.PostsPerPage)
	userService := services.NewUserService(userReadRepo, userWriteRepo, followReadRepo)

	r := newRouter(cfg, db, reg, tokens, authService, graphService, postService, userService)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// gRPC health server
	grpcAddr := fmt.Sprintf("%s:%s", cfg.GRPCHost, cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	if serveErr != nil {
		return serveErr
	}
	logger.Log.Info("Servers stopped gracefully")
	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"microblog-service/configs"
	"microblog-service/internal/feed"
	"microblog-service/internal/kafka"
	"microblog-service/internal/micropost"
	"microblog-service/internal/migrate"
	"microblog-service/internal/ratelimit"
	"microblog-service/internal/relationship"
	"microblog-service/internal/shared/httpx"
	"microblog-service/internal/shared/jwt"
	"microblog-service/internal/user"
	"microblog-service/internal/util"
	"microblog-service/pkg/db"
	"microblog-service/pkg/res"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gorm.io/plugin/opentelemetry/tracing"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("microblog-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	database := db.NewDb(cfg)
	_ = database.DB.Use(tracing.NewPlugin())

	if os.Getenv("AUTO_MIGRATE") != "false" {
		if err := migrate.AutoMigrateAll(database.DB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, rate limiting disabled: %v", err)
		rdb = nil
	}

	events := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer events.Close()

	clock := util.NewRealClock()

	userRepo := user.NewRepository(database.DB)
	userSvc := user.NewService(userRepo)

	relRepo := relationship.NewRepository(database.DB, userRepo)
	relSvc := relationship.NewService(relRepo)

	postRepo := micropost.NewRepository(database.DB, clock)
	postSvc := micropost.NewService(postRepo, events)

	feedSvc := feed.NewService(relRepo, postRepo)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		res.Json(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	uh := user.NewHandler(userSvc)
	mux.Handle("POST /users", httpx.Wrap(uh.Register))
	mux.Handle("POST /users/login", httpx.Wrap(uh.Login))
	mux.Handle("GET /users/{user_id}", httpx.Wrap(uh.GetByID))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}

	protect("DELETE /users", httpx.Wrap(uh.DeleteAccount))

	rh := relationship.NewHandler(relSvc)
	protect("POST /follow/{target_id}", httpx.Wrap(rh.Follow))
	protect("DELETE /follow/{target_id}", httpx.Wrap(rh.Unfollow))
	protect("GET /follow/{target_id}", httpx.Wrap(rh.IsFollowing))
	protect("GET /follow", httpx.Wrap(rh.ListFollowing))
	protect("GET /followers", httpx.Wrap(rh.ListFollowers))

	ph := micropost.NewHandler(postSvc)
	createPost := httpx.AuthMiddleware(httpx.Wrap(ph.Create))
	if rdb != nil {
		limiter := ratelimit.New(rdb)
		keyFn := func(r *http.Request) (string, error) {
			uid, err := jwt.Parse(httpx.BearerToken(r))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("post:%d", uid), nil
		}
		createPost = limiter.LimitHTTP(30, time.Minute, keyFn, createPost)
	}
	mux.Handle("POST /microposts", createPost)
	protect("DELETE /microposts/{id}", httpx.Wrap(ph.Destroy))
	protect("GET /microposts", httpx.Wrap(ph.ListMine))

	fh := feed.NewHandler(feedSvc)
	protect("GET /feed", httpx.Wrap(fh.Home))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("microblog-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}

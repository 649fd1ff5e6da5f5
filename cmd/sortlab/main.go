package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	config "github.com/davicafu/sortlab/internal/config"
	sharedCache "github.com/davicafu/sortlab/internal/shared/infra/platform/cache"
	sortingApp "github.com/davicafu/sortlab/internal/sorting/application"
	sortingHTTP "github.com/davicafu/sortlab/internal/sorting/infra/inbound/http"
	sortingMetrics "github.com/davicafu/sortlab/internal/sorting/infra/outbound/metrics"
	taskApp "github.com/davicafu/sortlab/internal/task/application"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
	taskHttp "github.com/davicafu/sortlab/internal/task/infra/inbound/http"
	taskCache "github.com/davicafu/sortlab/internal/task/infra/outbound/cache"
	taskMemory "github.com/davicafu/sortlab/internal/task/infra/outbound/db/memory"
	taskMongo "github.com/davicafu/sortlab/internal/task/infra/outbound/db/mongodb"
	taskPostgres "github.com/davicafu/sortlab/internal/task/infra/outbound/db/postgre"
	taskSQLite "github.com/davicafu/sortlab/internal/task/infra/outbound/db/sqlite"
	taskFS "github.com/davicafu/sortlab/internal/task/infra/outbound/filesystem"
	"github.com/davicafu/sortlab/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	log := logger.Logger()
	defer log.Sync() // flush buffers al salir

	if cfg.ConfigFile != "" {
		log.Info("Config file loaded", zap.String("file", cfg.ConfigFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open task repository", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeRepo()

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rc := taskCache.NewRedisCache(rdb, "sortlab:", cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("Redis not available, using in-memory cache", zap.Error(err))
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			cacheInstance = rc
			log.Info("Redis connected, cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}
	if cacheInstance == nil {
		mem := taskCache.NewInMemoryCache(cfg.CacheTTL)
		go mem.Run(ctx, cfg.CacheTTL)
		cacheInstance = mem
	}

	// --------------- Servicio --------------
	taskService := taskApp.NewTaskService(repo, cacheInstance, log)
	if cfg.SeedDemoData {
		if _, err := taskService.SeedDemo(ctx); err != nil {
			log.Error("Failed to seed demo data", zap.Error(err))
		}
	}

	// --------------- Ordenación --------------
	metrics := sortingMetrics.NewSortMetrics(prometheus.DefaultRegisterer)
	sorter := sortingApp.NewSorter(cfg.Sorting(), log, metrics)
	engine := sortingHTTP.NewEngine(sorter, log)

	// ---------------- HTTP ----------------
	taskHandler, err := taskHttp.NewTaskHandler(taskService, sorter, engine, log)
	if err != nil {
		log.Fatal("failed to compile templates", zap.Error(err))
	}

	router := gin.Default()
	router.Use(sortingHTTP.Sorting(log))
	taskHttp.RegisterTaskRoutes(router, taskHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "backend": cfg.StorageBackend})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		log.Info("Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// openRepository construye el repositorio de tareas según STORAGE_BACKEND.
func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (taskDomain.TaskRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return taskMemory.NewTaskRepoMemory(), func() {}, nil

	case config.BackendJSON:
		log.Info("Using JSON file store", zap.String("path", cfg.JSONPath))
		return taskFS.NewJSONTaskStorage(cfg.JSONPath), func() {}, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := taskSQLite.InitSQLite(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Using SQLite store", zap.String("path", cfg.SQLitePath))
		return taskSQLite.NewTaskRepoSQLite(db), func() { db.Close() }, nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := taskPostgres.InitPostgresTaskSchema(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Using Postgres store")
		return taskPostgres.NewTaskRepoPostgres(db), func() { db.Close() }, nil

	case config.BackendMongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		repo, err := taskMongo.NewTaskRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			disconnect()
			return nil, nil, err
		}
		log.Info("Using MongoDB store", zap.String("db", cfg.MongoDB))
		return repo, disconnect, nil
	}
	return nil, nil, config.ErrUnknownBackend
}

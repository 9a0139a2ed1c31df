package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "review-backend/internal/auth"
	"review-backend/internal/gists"
	"review-backend/internal/llm"
	openai "review-backend/internal/llm/openai"
	"review-backend/internal/reviews"
	"review-backend/internal/sandbox"
	"review-backend/internal/shared/config"
	"review-backend/internal/shared/metrics"
	"review-backend/internal/shared/server/middleware"
	"review-backend/internal/shared/server/respond"
	"review-backend/internal/shared/storage/db"
	"review-backend/internal/shared/storage/object"
	localstore "review-backend/internal/shared/storage/object/local"
	s3store "review-backend/internal/shared/storage/object/s3"
	"review-backend/internal/users"
)

const (
	groupDefault = "DEFAULT"
	groupPolling = "POLLING"
	groupLLM     = "LLM"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig()),
	)

	// Dependencies
	store := buildStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.DefaultServerOptions())
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var usersRepo users.Repo
	var reviewsRepo reviews.Repo
	var rewritesRepo reviews.RewriteRepo
	if sqlDB != nil {
		usersRepo = &users.PGRepo{DB: sqlDB}
		pg := &reviews.PGRepo{DB: sqlDB}
		reviewsRepo = pg
		rewritesRepo = pg
	} else {
		usersRepo = users.NewMemoryRepo()
		mem := reviews.NewMemoryRepo()
		reviewsRepo = mem
		rewritesRepo = mem
	}

	usersSvc := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersSvc)
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, usersSvc)

	reviewsSvc := &reviews.Service{
		Repo:     reviewsRepo,
		Rewrites: rewritesRepo,
		Store:    store,
		LLM:      buildLLM(cfg),
		Gists:    buildGists(cfg),
	}
	reviewsHandler := reviews.NewHandler(reviewsSvc)

	sandboxHandler := sandbox.NewHandler(buildSandbox(cfg))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	googleAuthSvc.RegisterRoutes(api)
	usersHandler.RegisterRoutes(api)
	reviewsHandler.RegisterRoutes(api)
	sandboxHandler.RegisterRoutes(api)

	return r
}

func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: groupDefault,
		GroupFor: func(c *gin.Context) string {
			path := c.FullPath()
			switch {
			case c.Request.Method == http.MethodGet && path == "/api/v1/reviews/:id":
				return groupPolling
			case c.Request.Method == http.MethodPost &&
				(path == "/api/v1/reviews" || path == "/api/v1/rewrites" || path == "/api/v1/executions"):
				return groupLLM
			default:
				return groupDefault
			}
		},
		Rules: map[string]middleware.RateLimitRule{
			// Polling is cheap; LLM-backed routes are not.
			groupPolling: {Rate: 5, Burst: 10},
			groupLLM:     {Rate: 0.2, Burst: 3},
			groupDefault: {Rate: 2, Burst: 5},
		},
	}
}

func buildStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.NewStore(context.Background(), s3store.Options{
			Bucket: cfg.S3Bucket,
			Prefix: cfg.S3Prefix,
			Region: cfg.AWSRegion,
			SSE:    true,
		})
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	store, err := localstore.NewStore(cfg.LocalStoreDir)
	if err != nil {
		log.Printf("failed to init local store; snapshots disabled: %v", err)
		return nil
	}
	return store
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "openai" {
		log.Printf("unsupported llm provider %q; reviews will fail until configured", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	client, err := openai.NewClient(apiKey, cfg.LLMModel)
	if err != nil {
		log.Printf("llm client not configured: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func buildGists(cfg config.Config) *gists.Client {
	if cfg.GistToken == "" {
		return nil
	}
	client, err := gists.NewClient(cfg.GistToken)
	if err != nil {
		log.Printf("gist sharing disabled: %v", err)
		return nil
	}
	return client
}

func buildSandbox(cfg config.Config) *sandbox.Client {
	client, err := sandbox.NewClient(cfg.SandboxURL)
	if err != nil {
		log.Printf("sandbox execution disabled: %v", err)
		return nil
	}
	return client
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

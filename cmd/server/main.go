package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	apigraphql "Feedline/internal/api/graphql"
	"Feedline/internal/api/middleware"
	"Feedline/internal/api/routes"
	"Feedline/internal/config"
	"Feedline/internal/core/attachments"
	"Feedline/internal/core/events"
	"Feedline/internal/core/identity"
	"Feedline/internal/core/posts"
	"Feedline/internal/core/users"
	"Feedline/internal/db/migrations"
	postgresRepo "Feedline/internal/db/postgres"
	"Feedline/internal/storage/disk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	logger := slog.Default()

	// Object storage, janitor and the event broadcaster.
	store, err := disk.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal("Failed to open media store:", err)
	}
	janitor := attachments.NewJanitor(store, logger)
	broadcaster := events.NewBroadcaster()

	// Repositories and services.
	authenticator := identity.NewTokenAuthenticator([]byte(cfg.JWTSecret))
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	userService := users.NewUserService(userRepo, authenticator, cfg.TokenTTL)
	postService := posts.NewPostService(postRepo, userRepo, janitor, broadcaster, cfg.FeedPageSize, logger)

	schema, err := apigraphql.NewSchema(apigraphql.Resolvers{
		Users: userService,
		Posts: postService,
	})
	if err != nil {
		log.Fatal("Failed to build GraphQL schema:", err)
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS())

	// Rate limiting: 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	// Identity resolution is fail-open: unauthenticated requests continue
	// as anonymous and every mutation path re-checks for itself.
	identityMiddleware := middleware.NewIdentityMiddleware(authenticator)
	r.Use(identityMiddleware.Resolve)

	routes.RegisterAuthRoutes(r, userService)
	routes.RegisterFeedRoutes(r, postService, store, janitor, cfg.MaxUploadBytes)
	routes.RegisterLiveRoutes(r, broadcaster, logger)

	r.Method(http.MethodPost, "/graphql", apigraphql.NewHandler(schema))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("Feedline starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hana/diary-share/internal/api/handlers"
	"github.com/hana/diary-share/internal/api/middleware"
	"github.com/hana/diary-share/internal/config"
	"github.com/hana/diary-share/internal/service"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg, log)
	diaryHandler := handlers.NewDiaryHandler(services.Diary)
	commentHandler := handlers.NewCommentHandler(services.Comment)
	likeHandler := handlers.NewLikeHandler(services.Like)

	requireAuth := middleware.RequireAuth(services.Auth, log)
	optionalAuth := middleware.OptionalAuth(services.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/login-json", authHandler.LoginJSON)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Post("/upload-profile-image", authHandler.UploadProfileImage)
				r.Put("/update-profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/diaries", func(r chi.Router) {
			// Read paths work for anonymous callers too
			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/", diaryHandler.List)
				r.Get("/{diaryID}", diaryHandler.Get)
				r.Get("/{diaryID}/comments", commentHandler.ListByDiary)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", diaryHandler.Create)
				r.Get("/me", diaryHandler.ListMine)
				r.Put("/{diaryID}", diaryHandler.Update)
				r.Delete("/{diaryID}", diaryHandler.Delete)
				r.Post("/{diaryID}/comments", commentHandler.Create)
				r.Post("/{diaryID}/like", likeHandler.ToggleDiary)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", commentHandler.ListMine)
			r.Put("/{commentID}", commentHandler.Update)
			r.Delete("/{commentID}", commentHandler.Delete)
			r.Post("/{commentID}/like", likeHandler.ToggleComment)
		})
	})

	// Uploaded profile images are served publicly
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}

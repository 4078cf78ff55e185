package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmarquez/taskflow-be/internal/api/handlers"
	"github.com/dmarquez/taskflow-be/internal/auth"
	"github.com/dmarquez/taskflow-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenService, userService services.UserServiceProvider, taskService services.TaskServiceProvider, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService, userService)

	// Public endpoints
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	// Everything else requires a verified bearer token
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.GetAll)
			r.Post("/", taskHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/tasks", taskHandler.GetMine)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return r
}

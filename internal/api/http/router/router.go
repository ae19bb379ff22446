package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/quill-server/internal/api/http/handler"
	"github.com/dtroode/quill-server/internal/api/http/middleware"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

const corsMaxAge = 300

// Params holds everything the router needs to build the HTTP API.
type Params struct {
	AuthService    handler.AuthService
	UserService    handler.UserService
	PostService    handler.PostService
	Storage        model.Storage
	Tokens         middleware.TokenVerifier
	ContextManager model.ContextManager
	DB             handler.Pinger
	CORSOrigins    []string
	Logger         *logger.Logger
}

// Router builds the chi handler tree for the blog API.
type Router struct {
	params Params
}

// New creates new HTTP Router instance.
func New(params Params) *Router {
	return &Router{params: params}
}

// Register mounts middleware and all routes and returns the root handler.
func (r *Router) Register() http.Handler {
	p := r.params

	logging := middleware.NewLogging(p.Logger)
	recoverer := middleware.NewRecover(p.Logger)
	authenticate := middleware.NewAuthenticate(p.Tokens, p.ContextManager, p.Logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(logging.Handler)
	mux.Use(recoverer.Handler)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   p.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	mux.NotFound(handler.NotFound)
	mux.MethodNotAllowed(handler.MethodNotAllowed)

	health := handler.NewHealth(p.DB, p.Logger)
	mux.Get("/healthz", health.Check)

	uploads := handler.NewUploads(p.Storage, p.Logger)
	mux.Get("/uploads/*", uploads.Serve)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			r.registerUserRoutes(users, authenticate)
		})
		api.Route("/posts", func(posts chi.Router) {
			r.registerPostRoutes(posts, authenticate)
		})
	})

	return mux
}

func (r *Router) registerUserRoutes(mux chi.Router, authenticate *middleware.Authenticate) {
	h := handler.NewUser(r.params.AuthService, r.params.UserService, r.params.ContextManager, r.params.Logger)

	mux.Post("/register", h.Register)
	mux.Post("/login", h.Login)
	mux.Get("/authors", h.Authors)

	mux.Group(func(protected chi.Router) {
		protected.Use(authenticate.Handler)
		protected.Post("/change-avatar", h.ChangeAvatar)
		protected.Patch("/edit-user", h.EditUser)
		protected.Get("/{id}", h.Get)
	})
}

func (r *Router) registerPostRoutes(mux chi.Router, authenticate *middleware.Authenticate) {
	h := handler.NewPost(r.params.PostService, r.params.ContextManager, r.params.Logger)

	mux.Get("/", h.List)
	mux.Get("/category/{category}", h.ListByCategory)
	mux.Get("/user/{userId}", h.ListByAuthor)
	mux.Get("/{id}", h.Get)

	mux.Group(func(protected chi.Router) {
		protected.Use(authenticate.Handler)
		protected.Post("/", h.Create)
		protected.Put("/{id}", h.Edit)
		protected.Delete("/{id}", h.Delete)
	})
}

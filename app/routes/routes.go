package routes

import (
	"net/http"

	"wallboard/app/controllers"
	"wallboard/app/metrics"
	"wallboard/app/middleware"
	"wallboard/app/services"

	"github.com/gorilla/mux"
)

// Deps bundles everything the router needs.
type Deps struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Auth     *services.AuthService
	Library  *services.LibraryService
	Metrics  *metrics.Metrics

	DefaultPageSize int
}

// SetupRoutes defines the application's routes and returns a router.
// Route names feed the handler label of the request-duration histogram.
func SetupRoutes(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Instrument(deps.Metrics))
	router.Use(middleware.ContentTypeJSON)

	healthController := controllers.NewHealthController()
	postController := controllers.NewPostController(deps.Posts, deps.Auth, deps.DefaultPageSize)
	commentController := controllers.NewCommentController(deps.Comments, deps.Auth)
	authController := controllers.NewAuthController(deps.Auth)
	libraryController := controllers.NewLibraryController(deps.Library)

	// Probes and scraping
	router.HandleFunc("/healthz", healthController.Healthz).Methods("GET").Name("healthz")
	router.Handle("/metrics", deps.Metrics.Handler()).Methods("GET").Name("metrics")

	// Auth endpoints
	router.HandleFunc("/auth/register", authController.Register).Methods("POST").Name("auth_register")
	router.HandleFunc("/auth/login", authController.Login).Methods("POST").Name("auth_login")

	// Posts endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET").Name("list_posts")
	posts.HandleFunc("", postController.Create).Methods("POST").Name("create_post")

	// Comments endpoints
	posts.HandleFunc("/{postId}/comments", commentController.Index).Methods("GET").Name("list_comments")
	posts.HandleFunc("/{postId}/comments", commentController.Create).Methods("POST").Name("create_comment")

	// Library endpoints
	library := router.PathPrefix("/library").Subrouter()
	library.HandleFunc("/recipes", libraryController.Recipes).Methods("GET").Name("library_recipes")
	library.HandleFunc("/places", libraryController.Places).Methods("GET").Name("library_places")
	library.HandleFunc("/history", libraryController.History).Methods("GET").Name("library_history")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}

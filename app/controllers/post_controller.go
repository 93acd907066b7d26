package controllers

import (
	"net/http"
	"strconv"

	"wallboard/app/models"
	"wallboard/app/services"
)

// PostController handles HTTP requests for wall posts and the feed.
type PostController struct {
	postService     *services.PostService
	authService     *services.AuthService
	defaultPageSize int
}

// NewPostController creates a new PostController.
func NewPostController(postService *services.PostService, authService *services.AuthService, defaultPageSize int) *PostController {
	return &PostController{
		postService:     postService,
		authService:     authService,
		defaultPageSize: defaultPageSize,
	}
}

type createPostRequest struct {
	Type       models.PostType `json:"type"`
	Title      string          `json:"title"`
	Body       string          `json:"body"`
	LinkURL    string          `json:"link_url"`
	ImageURL   string          `json:"image_url"`
	AuthorName string          `json:"author_name"`
}

// Index handles listing the feed with limit and cursor pagination.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	limit := pc.defaultPageSize
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}
	cursor := r.URL.Query().Get("cursor")

	page, err := pc.postService.ListFeed(r.Context(), limit, cursor)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, page)
}

// Create handles creating a new post.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post := &models.Post{
		Type:       req.Type,
		Title:      req.Title,
		Body:       req.Body,
		LinkURL:    req.LinkURL,
		ImageURL:   req.ImageURL,
		AuthorName: req.AuthorName,
	}

	created, err := pc.postService.CreatePost(r.Context(), post, bearerUser(r, pc.authService))
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, created)
}

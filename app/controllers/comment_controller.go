package controllers

import (
	"net/http"

	"wallboard/app/apperrors"
	"wallboard/app/models"
	"wallboard/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments.
type CommentController struct {
	commentService *services.CommentService
	authService    *services.AuthService
}

// NewCommentController creates a new CommentController.
func NewCommentController(commentService *services.CommentService, authService *services.AuthService) *CommentController {
	return &CommentController{
		commentService: commentService,
		authService:    authService,
	}
}

type createCommentRequest struct {
	Body       string `json:"body"`
	AuthorName string `json:"author_name"`
}

// Index handles listing a post's comments, oldest first.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromPath(w, r)
	if !ok {
		return
	}

	comments, err := cc.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		sendError(w, r, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles creating a comment on a post.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromPath(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment := &models.Comment{
		PostID:     postID,
		Body:       req.Body,
		AuthorName: req.AuthorName,
	}

	created, err := cc.commentService.CreateComment(r.Context(), comment, bearerUser(r, cc.authService))
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, created)
}

func postIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	postID, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, r, apperrors.Validation("invalid post ID"))
		return uuid.Nil, false
	}
	return postID, true
}

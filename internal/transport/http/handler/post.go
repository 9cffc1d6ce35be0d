package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gopherpress/internal/app"
	"gopherpress/internal/transport/http/middleware"
	"gopherpress/internal/transport/http/response"
)

// postsIndexPath is the navigation target handed back after every
// successful write.
const postsIndexPath = "/posts"

type PostHandler struct {
	postService *app.PostService
}

type PostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Index renders the posts listing props: one page of posts with owners,
// pagination metadata, the applied filter echo and the author directory.
func (h *PostHandler) Index(c *gin.Context) {
	query := app.ListQuery{
		Search: c.Query("search"),
		UserID: parseUintQuery(c, "user_id"),
		Page:   int(parseUintQuery(c, "page")),
	}

	index, err := h.postService.ListPage(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}
	response.OK(c, index)
}

// Create renders the empty create form props.
func (h *PostHandler) Create(c *gin.Context) {
	response.OK(c, gin.H{
		"post": gin.H{"title": "", "body": ""},
	})
}

func (h *PostHandler) Store(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	_, err := h.postService.CreatePost(identity, app.PostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.writeError(c, err, "create post failed")
		return
	}
	response.OK(c, gin.H{"redirect": postsIndexPath})
}

// Edit renders the pre-filled edit form props, or 404 for a missing id.
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		h.writeError(c, err, "fetch post failed")
		return
	}
	response.OK(c, gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	id, idOK := parseIDParam(c)
	if !idOK {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.postService.UpdatePost(identity, id, app.PostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.writeError(c, err, "update post failed")
		return
	}
	response.OK(c, gin.H{"redirect": postsIndexPath})
}

func (h *PostHandler) Destroy(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	id, idOK := parseIDParam(c)
	if !idOK {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		return
	}

	if err := h.postService.DeletePost(identity, id); err != nil {
		h.writeError(c, err, "delete post failed")
		return
	}
	response.OK(c, gin.H{"redirect": postsIndexPath})
}

func (h *PostHandler) writeError(c *gin.Context, err error, fallback string) {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationFailed(c, validationErr.Fields)
	case errors.Is(err, app.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func identityFromContext(c *gin.Context) (app.Identity, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return app.Identity{}, false
	}
	userID, ok := userIDAny.(uint)
	if !ok || userID == 0 {
		return app.Identity{}, false
	}
	return app.Identity{
		UserID: userID,
		Name:   c.GetString(middleware.ContextNameKey),
	}, true
}

// parseUintQuery reads an optional numeric query value; anything
// unparsable counts as absent rather than an error.
func parseUintQuery(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

// Package post содержит HTTP-обработчики ленты: записи, лайки и комментарии.
package post

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fighters-hub/internal/http/request"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// Service записи и реакции на них.
type Service interface {
	CreatePost(ctx context.Context, uid string, req models.PostRequest) (*models.Post, error)
	ListByAuthor(ctx context.Context, username string, page models.Page) ([]*models.Post, error)
	DeletePost(ctx context.Context, uid string, id int64) error
	Like(ctx context.Context, uid string, postID int64) error
	Unlike(ctx context.Context, uid string, postID int64) error
	Comment(ctx context.Context, uid string, postID int64, text string) (*models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// CreateHandler публикует запись.
type CreateHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewCreate создает CreateHandler.
func NewCreate(log *slog.Logger, service Service) *CreateHandler {
	return &CreateHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Опубликовать запись
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PostRequest true "Запись"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /posts [post]
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.PostRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	p, err := h.service.CreatePost(r.Context(), uid, req)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("post created", slog.Int64("id", p.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(p))
}

// DeleteHandler удаляет свою запись.
type DeleteHandler struct {
	log     *slog.Logger
	service Service
}

// NewDelete создает DeleteHandler.
func NewDelete(log *slog.Logger, service Service) *DeleteHandler {
	return &DeleteHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить запись
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Чужая запись"
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [delete]
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.delete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), uid, id); err != nil {
		log.Warn("failed to delete post", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("post deleted", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "post deleted",
	}))
}

// ListByAuthorHandler возвращает записи бойца.
type ListByAuthorHandler struct {
	log     *slog.Logger
	service Service
}

// NewListByAuthor создает ListByAuthorHandler.
func NewListByAuthor(log *slog.Logger, service Service) *ListByAuthorHandler {
	return &ListByAuthorHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Записи бойца
// @Tags Posts
// @Produce json
// @Param username path string true "Имя пользователя"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /profiles/{username}/posts [get]
func (h *ListByAuthorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.listbyauthor"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	posts, err := h.service.ListByAuthor(r.Context(), username, request.Page(r, defaultPageSize, maxPageSize))
	if err != nil {
		log.Warn("failed to list posts", slog.String("username", username), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(posts))
}

// LikeHandler ставит или снимает лайк.
type LikeHandler struct {
	log     *slog.Logger
	service Service
	unlike  bool
}

// NewLike создает LikeHandler, который ставит лайк.
func NewLike(log *slog.Logger, service Service) *LikeHandler {
	return &LikeHandler{log: log, service: service}
}

// NewUnlike создает LikeHandler, который снимает лайк.
func NewUnlike(log *slog.Logger, service Service) *LikeHandler {
	return &LikeHandler{log: log, service: service, unlike: true}
}

// ServeHTTP godoc
// @Summary Лайк записи
// @Description POST ставит лайк, DELETE снимает.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Лайк уже стоит"
// @Router /posts/{id}/like [post]
// @Router /posts/{id}/like [delete]
func (h *LikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.like"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("unlike", h.unlike),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	var err error
	if h.unlike {
		err = h.service.Unlike(r.Context(), uid, id)
	} else {
		err = h.service.Like(r.Context(), uid, id)
	}
	if err != nil {
		log.Warn("failed to change like", slog.Int64("post_id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"post_id": id,
		"liked":   !h.unlike,
	}))
}

// CommentHandler добавляет комментарий к записи.
type CommentHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewComment создает CommentHandler.
func NewComment(log *slog.Logger, service Service) *CommentHandler {
	return &CommentHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Комментировать запись
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body models.CommentRequest true "Комментарий"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.comment"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}
	var req models.CommentRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	c, err := h.service.Comment(r.Context(), uid, id, req.Text)
	if err != nil {
		log.Warn("failed to add comment", slog.Int64("post_id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(c))
}

// CommentsHandler возвращает комментарии записи.
type CommentsHandler struct {
	log     *slog.Logger
	service Service
}

// NewComments создает CommentsHandler.
func NewComments(log *slog.Logger, service Service) *CommentsHandler {
	return &CommentsHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Комментарии записи
// @Tags Posts
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id}/comments [get]
func (h *CommentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.comments"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	list, err := h.service.ListComments(r.Context(), id)
	if err != nil {
		log.Warn("failed to list comments", slog.Int64("post_id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}

package stock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/finboard/service-api-go/internal/auth"
	"github.com/finboard/service-api-go/internal/stock/entity"
	"github.com/finboard/service-api-go/pkg/httpx"
)

// Handler exposes the stock discussion board endpoints. Every post route is
// scoped by a category name taken from the path; an unknown category is 404.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// PostBody is the create/update payload for a post.
type PostBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentBody is the create/update payload for a comment.
type CommentBody struct {
	Comment string `json:"comment"`
}

// VoteBody is the like/hate payload.
type VoteBody struct {
	Like bool `json:"like"`
	Hate bool `json:"hate"`
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	items, err := h.svc.List(r.Context(), c.ID)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	identity, _ := auth.IdentityFrom(r.Context())
	var body PostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	d, err := h.svc.Create(r.Context(), c.ID, identity.UserID, body.Title, body.Content)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	var body PostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}
	d, err := h.svc.Update(r.Context(), id, body.Title, body.Content)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "Success"})
}

func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	d, err := h.svc.IncrementViews(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	items, err := h.svc.Comments(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	identity, _ := auth.IdentityFrom(r.Context())
	var body CommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	items, err := h.svc.CreateComment(r.Context(), id, identity.UserID, body.Comment)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	stockID, commentID, ok := h.commentOwned(w, r)
	if !ok {
		return
	}
	var body CommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	items, err := h.svc.UpdateComment(r.Context(), stockID, commentID, body.Comment)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	stockID, commentID, ok := h.commentOwned(w, r)
	if !ok {
		return
	}
	items, err := h.svc.DeleteComment(r.Context(), stockID, commentID)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) Votes(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	votes, err := h.svc.Votes(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, votes)
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.categoryAndID(w, r)
	if !ok {
		return
	}
	identity, _ := auth.IdentityFrom(r.Context())
	var body VoteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	votes, err := h.svc.Vote(r.Context(), id, identity.UserID, body.Like, body.Hate)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, votes)
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) (*entity.Category, bool) {
	c, err := h.svc.Category(r.Context(), r.PathValue("stock"))
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return c, true
}

func (h *Handler) categoryAndID(w http.ResponseWriter, r *http.Request) (*entity.Category, int64, bool) {
	c, ok := h.category(w, r)
	if !ok {
		return nil, 0, false
	}
	id, err := strconv.ParseInt(r.PathValue("stock_id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid stock_id")
		return nil, 0, false
	}
	return c, id, true
}

func (h *Handler) requireOwner(w http.ResponseWriter, r *http.Request, id int64) bool {
	identity, _ := auth.IdentityFrom(r.Context())
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return false
	}
	if err := identity.RequireOwner(d.WriterID); err != nil {
		h.fail(w, err)
		return false
	}
	return true
}

func (h *Handler) commentOwned(w http.ResponseWriter, r *http.Request) (stockID, commentID int64, ok bool) {
	_, stockID, ok = h.categoryAndID(w, r)
	if !ok {
		return 0, 0, false
	}
	commentID, err := strconv.ParseInt(r.PathValue("comment_id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid comment_id")
		return 0, 0, false
	}
	if _, err := h.svc.Get(r.Context(), stockID); err != nil {
		h.fail(w, err)
		return 0, 0, false
	}
	c, err := h.svc.GetComment(r.Context(), commentID)
	if err != nil {
		h.fail(w, err)
		return 0, 0, false
	}
	identity, _ := auth.IdentityFrom(r.Context())
	if err := identity.RequireOwner(c.UserID); err != nil {
		h.fail(w, err)
		return 0, 0, false
	}
	return stockID, commentID, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrCommentNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Errorw("stock request failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

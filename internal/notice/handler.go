package notice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/finboard/service-api-go/internal/auth"
	"github.com/finboard/service-api-go/pkg/httpx"
)

// Handler exposes the bulletin board HTTP endpoints. Reads are anonymous;
// creation needs authentication and mutation additionally needs ownership.
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notice_id")
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
	identity, _ := auth.IdentityFrom(r.Context())
	var body PostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	d, err := h.svc.Create(r.Context(), identity.UserID, body.Title, body.Content)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notice_id")
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
	id, ok := pathID(w, r, "notice_id")
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
	id, ok := pathID(w, r, "notice_id")
	if !ok {
		return
	}
	// the post must exist before the counter moves
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
	id, ok := pathID(w, r, "notice_id")
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
	id, ok := pathID(w, r, "notice_id")
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
	noticeID, commentID, ok := h.commentOwned(w, r)
	if !ok {
		return
	}
	var body CommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	items, err := h.svc.UpdateComment(r.Context(), noticeID, commentID, body.Comment)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	noticeID, commentID, ok := h.commentOwned(w, r)
	if !ok {
		return
	}
	items, err := h.svc.DeleteComment(r.Context(), noticeID, commentID)
	if err != nil {
		h.fail(w, err)
		return
	}
	page, size := httpx.PageParams(r)
	httpx.WriteJSON(w, http.StatusOK, httpx.Paginate(items, page, size))
}

func (h *Handler) Votes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notice_id")
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
	id, ok := pathID(w, r, "notice_id")
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

// requireOwner loads the post and checks the authenticated user wrote it.
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

// commentOwned resolves both path ids, checks the post exists and the
// authenticated user wrote the comment.
func (h *Handler) commentOwned(w http.ResponseWriter, r *http.Request) (noticeID, commentID int64, ok bool) {
	noticeID, ok = pathID(w, r, "notice_id")
	if !ok {
		return 0, 0, false
	}
	commentID, ok = pathID(w, r, "comment_id")
	if !ok {
		return 0, 0, false
	}
	if _, err := h.svc.Get(r.Context(), noticeID); err != nil {
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
	return noticeID, commentID, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCommentNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Errorw("notice request failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

package micropost

import (
	"net/http"

	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/shared/httpx"
	"microblog-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

type createReq struct {
	Content string `json:"content" validate:"required,max=140"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	body, err := httpx.Decode[createReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		// Rejected submissions still render a coherent page: the response
		// carries an empty-but-present feed alongside the error.
		httpx.WriteJSON(w, map[string]any{"error": err.Error(), "feed": []Micropost{}}, http.StatusUnprocessableEntity)
		return nil
	}
	p, err := h.svc.Create(uid, body.Content)
	if err != nil {
		if apperr.IsValidation(err) {
			httpx.WriteJSON(w, map[string]any{"error": err.Error(), "feed": []Micropost{}}, http.StatusUnprocessableEntity)
			return nil
		}
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Destroy(uid, id); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := httpx.QueryInt(r, "limit", 50)
	offset := httpx.QueryInt(r, "offset", 0)
	posts, err := h.svc.ListMine(uid, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": posts, "limit": limit, "offset": offset}, http.StatusOK)
	return nil
}

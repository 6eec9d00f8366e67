package theme

import (
	"net/http"

	"github.com/frahmantamala/salary-calculator/internal/transport"
)

type Response struct {
	Theme Theme `json:"theme"`
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Get(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, Response{Theme: t})
}

func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req Response
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Set(r.Context(), req.Theme)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, Response{Theme: t})
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Toggle(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, Response{Theme: t})
}

package fight

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/pkg/utilities"
)

const maxBodyBytes = 1 << 20

// Handler exposes the fight log endpoints. All routes expect auth.Middleware
// to have attached the caller's identity.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type fightResponse struct {
	Message string        `json:"message"`
	Fight   *entity.Fight `json:"fight"`
}

// ListResponse is the body of GET /fights.
type ListResponse struct {
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Fights []entity.Fight `json:"fights"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if !h.decode(w, r, &req) {
		return
	}
	in, err := req.validate()
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	f, err := h.svc.Create(r.Context(), id.UserID, in)
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, fightResponse{Message: "Fight log created successfully", Fight: f})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	filter, err := parseListQuery(r.URL.Query())
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	page, err := h.svc.List(r.Context(), id.UserID, filter)
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	fights := page.Fights
	if fights == nil {
		fights = []entity.Fight{}
	}
	utilities.WriteJSON(w, http.StatusOK, ListResponse{Total: page.Total, Limit: page.Limit, Offset: page.Offset, Fights: fights})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	fightID, err := parseID(r.PathValue("id"))
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	var req UpdateRequest
	if !h.decode(w, r, &req) {
		return
	}
	patch, err := req.validate()
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	f, err := h.svc.Update(r.Context(), fightID, id.UserID, patch)
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, fightResponse{Message: "Fight log updated", Fight: f})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	fightID, err := parseID(r.PathValue("id"))
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	if err := h.svc.Delete(r.Context(), fightID, id.UserID); err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": "Fight log deleted"})
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		apperr.Write(w, r, h.logger, apperr.ErrUnauthenticated)
	}
	return id, ok
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		h.logger.Debugw("invalid fight payload", "err", err)
		apperr.Write(w, r, h.logger, apperr.Invalid("invalid payload"))
		return false
	}
	return true
}

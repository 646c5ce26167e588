package user

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/pkg/utilities"
)

const (
	maxBodyBytes = 1 << 20
	// users.email is VARCHAR(255)
	maxEmailLen = 255
	// bcrypt only reads the first 72 bytes and x/crypto rejects longer input
	maxPasswordBytes = 72
)

// Handler exposes HTTP endpoints for user operations (register / login).
type Handler struct {
	svc    *UserService
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CredentialsRequest is the body of both /register and /login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req CredentialsRequest) validate() error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperr.Invalid("Email and password required")
	}
	if utf8.RuneCountInString(req.Email) > maxEmailLen {
		return ErrEmailLong
	}
	if len(req.Password) > maxPasswordBytes {
		return ErrPasswordLong
	}
	return nil
}

// RegisterResponse response body containing the new user.
type RegisterResponse struct {
	Message string            `json:"message"`
	User    entity.PublicView `json:"user"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    entity.PublicView `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("register failed", "err", err)
		apperr.Write(w, r, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, RegisterResponse{Message: "User registered successfully", User: u.Public()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		apperr.Write(w, r, h.logger, err)
		return
	}
	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("login failed", "err", err)
		apperr.Write(w, r, h.logger, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token, User: u.Public()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debugw("invalid credentials payload", "err", err)
		return req, apperr.Invalid("invalid payload")
	}
	return req, req.validate()
}

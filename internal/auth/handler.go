package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// errorBody is the error shape every auth endpoint speaks. Field is set for
// validation failures so the client can highlight the offending input.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	grant, err := h.service.Register(r.Context(), reg)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusUnprocessableEntity, verr.Reason, verr.Field)
		case errors.Is(err, ErrEmailTaken):
			respondError(w, http.StatusConflict, ErrEmailTaken.Error(), "email")
		default:
			slog.Error("register failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error", "")
		}
		return
	}

	respond(w, http.StatusCreated, grant)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required", "")
		return
	}

	grant, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error(), "")
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error", "")
		return
	}

	respond(w, http.StatusOK, grant)
}

// Me returns the profile behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	profile, err := h.service.Profile(r.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			respondError(w, http.StatusNotFound, "account no longer exists", "")
			return
		}
		slog.Error("load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error", "")
		return
	}

	respond(w, http.StatusOK, profile)
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg, field string) {
	respond(w, status, errorBody{Error: msg, Field: field})
}

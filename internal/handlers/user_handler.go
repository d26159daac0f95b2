package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"onegoal/internal/config"
	"onegoal/internal/models"
	"onegoal/internal/services"
	jwtutil "onegoal/pkg/jwt"
	"onegoal/pkg/middleware"
)

// UserHandler handles HTTP requests related to accounts and settings.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// POST /users/register
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode registration request")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), req)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		respondError(w, err)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User registered successfully")
	respondJSON(w, http.StatusCreated, user)
}

// POST /users/login
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).Warn("Authentication failed")
		respondError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GET /users/me
func (h *UserHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// PUT /users/me/settings
func (h *UserHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.WithError(err).Warn("Failed to decode settings update")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.UpdateSettings(r.Context(), claims.UserID, settings)
	if err != nil {
		log.WithError(err).Warn("Failed to update settings")
		respondError(w, err)
		return
	}

	log.WithField("userID", claims.UserID).Info("Settings updated")
	respondJSON(w, http.StatusOK, user)
}

// GET /users/me/routines
func (h *UserHandler) GetRoutineSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	settings, err := h.Service.GetRoutineSettings(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// PUT /users/me/routines
func (h *UserHandler) UpdateRoutineSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var settings models.RoutineSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.WithError(err).Warn("Failed to decode routine settings update")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateRoutineSettings(r.Context(), claims.UserID, settings)
	if err != nil {
		log.WithError(err).Warn("Failed to update routine settings")
		respondError(w, err)
		return
	}

	log.WithField("userID", claims.UserID).Info("Routine settings updated")
	respondJSON(w, http.StatusOK, updated)
}

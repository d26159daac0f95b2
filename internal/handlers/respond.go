package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/pkg/apperrors"
	"onegoal/pkg/middleware"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// respondError translates a tagged service error into its HTTP status with a
// JSON body.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperrors.HTTPStatus(err), map[string]string{"error": err.Error()})
}

// respondBadPayload answers a request whose JSON body could not be decoded.
func respondBadPayload(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
}

// requireUser pulls the authenticated user id out of the request context and
// writes the 401 itself, so handlers can just return on !ok.
func requireUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthenticated request reached a protected handler")
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Malformed user id in token claims")
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

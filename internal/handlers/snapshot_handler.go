package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"onegoal/internal/models"
	"onegoal/internal/services"
)

// SnapshotHandler handles export and import of a user's full data snapshot.
type SnapshotHandler struct {
	Service *services.SnapshotService
}

// NewSnapshotHandler creates a new instance of SnapshotHandler.
func NewSnapshotHandler(snapshotService *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{Service: snapshotService}
}

// GET /snapshot/export
func (h *SnapshotHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	snapshot, err := h.Service.Export(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to export snapshot")
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="onegoal-snapshot.json"`)
	respondJSON(w, http.StatusOK, snapshot)
}

// POST /snapshot/import
func (h *SnapshotHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var snapshot models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during snapshot import")
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	if err := h.Service.Import(r.Context(), userID, &snapshot); err != nil {
		logrus.WithError(err).Warn("Failed to import snapshot")
		respondError(w, err)
		return
	}

	logrus.WithField("userID", userID.Hex()).Info("Snapshot imported")
	respondJSON(w, http.StatusOK, map[string]string{"message": "snapshot imported"})
}

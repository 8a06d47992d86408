package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matchup/internal/broker"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

const maxDatasetBytes = 16 << 20

type DatasetHandler struct {
	broker *broker.Broker
}

func NewDatasetHandler(b *broker.Broker) *DatasetHandler {
	return &DatasetHandler{broker: b}
}

type datasetSummary struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	LoadedAt  time.Time `json:"loaded_at"`
	Teams     int       `json:"teams"`
	Metrics   int       `json:"metrics"`
}

func summarizeField(f *scoring.Field) datasetSummary {
	return datasetSummary{
		DatasetID: f.ID,
		LoadedAt:  f.LoadedAt,
		Teams:     len(f.Teams),
		Metrics:   len(f.Stats),
	}
}

// Upload replaces the field with the posted dataset array.
// POST /api/v1/dataset
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	records, err := store.DecodeDataset(http.MaxBytesReader(w, r.Body, maxDatasetBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "dataset too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.broker.LoadRecords(r.Context(), "upload", records)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summarizeField(f))
}

// Reload re-reads the configured dataset source.
// POST /api/v1/dataset/reload
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	f, err := h.broker.Reload(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summarizeField(f))
}

// Export writes the loaded dataset back out in upload format.
// GET /api/v1/dataset
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.broker.Engine().Field()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Dataset-ID", f.ID.String())
	if err := store.EncodeDataset(w, f.Records()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

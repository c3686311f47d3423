package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PzNot2ndPlace/hints-service/internal/apperr"
	"github.com/PzNot2ndPlace/hints-service/internal/hintservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *hintservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *hintservice.Service) *Handler {
	return &Handler{svc: svc}
}

// TextBasedHint handles POST /api/hints/text-based.
//
// It takes the full note history plus the current time and returns the
// single recommended hint, or 404 when the engine finds no recurring
// pattern worth recommending. The 404 is a normal outcome of the
// recommendation, distinct from any transport error.
func (h *Handler) TextBasedHint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	var req HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	notes, err := req.ToNotes()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	now, err := req.Time()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	res, err := h.svc.Recommend(r.Context(), notes, now)
	if err != nil {
		if errors.Is(err, apperr.ErrNoRecommendation) {
			writeJSON(w, http.StatusNotFound, errorBody("no recommendation"))
		} else {
			slog.Error("recommend failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, HintResponse{
		Note:     NoteToDTO(res.Note),
		HintText: res.HintText,
	})
}

// Signatures handles POST /api/hints/signatures.
//
// It returns the per-category temporal signature of the submitted
// history: how many time triggers each category carries and their
// average time-of-day.
func (h *Handler) Signatures(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	var req SignaturesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	notes, err := req.ToNotes()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	sigs := h.svc.Signatures(notes)
	writeJSON(w, http.StatusOK, SignaturesResponse{Signatures: signaturesToDTO(sigs)})
}

// RecentHints handles GET /api/hints/recent.
//
// It serves the audit log of recently served hints; the list is empty
// when the log is disabled.
func (h *Handler) RecentHints(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.svc.RecentHints(limit)
	if err != nil {
		slog.Error("recent hints failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hints": entries,
	})
}

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/internal/service/tracker"
)

// trackerService defines the minimal interface needed by SessionHandler.
type trackerService interface {
	PunchIn(ctx context.Context, input tracker.PunchInInput) (*domain.WorkSession, error)
	PunchOut(ctx context.Context, input tracker.PunchOutInput) (tracker.PunchOutResult, error)
	Cancel(ctx context.Context) error
	GetActiveSession(ctx context.Context) (*domain.WorkSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.WorkSession, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.WorkSession, error)
	GetHistory(ctx context.Context, input tracker.GetHistoryInput) ([]*domain.WorkSession, int, error)
	UpdateNotes(ctx context.Context, input tracker.UpdateNotesInput) (*domain.WorkSession, error)
}

// SessionHandler serves work session REST endpoints.
type SessionHandler struct {
	svc trackerService
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc trackerService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: logger.With("handler", "sessions")}
}

type punchInRequest struct {
	ProjectID *uuid.UUID `json:"projectId"`
	Notes     string     `json:"notes"`
}

type punchOutRequest struct {
	Notes *string `json:"notes"`
}

type punchOutResponse struct {
	Session   *sessionResponse `json:"session,omitempty"`
	Discarded bool             `json:"discarded"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type historyResponse struct {
	Sessions []*sessionResponse `json:"sessions"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// PunchIn handles POST /sessions/punch-in.
func (h *SessionHandler) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req punchInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.PunchIn(r.Context(), tracker.PunchInInput{
		ProjectID: req.ProjectID,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// PunchOut handles POST /sessions/punch-out. Sessions below the minimum
// duration are discarded and reported as such.
func (h *SessionHandler) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req punchOutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.svc.PunchOut(r.Context(), tracker.PunchOutInput{Notes: req.Notes})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, punchOutResponse{
		Session:   toSessionResponse(result.Session),
		Discarded: result.Discarded,
	})
}

// Cancel handles POST /sessions/cancel. Cancelling with no active
// session is a no-op.
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Active handles GET /sessions/active. The session is null when nothing
// is running.
func (h *SessionHandler) Active(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetActiveSession(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*sessionResponse{"session": toSessionResponse(session)})
}

// Recent handles GET /sessions/recent?limit=N.
func (h *SessionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.GetRecent(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*sessionResponse{"sessions": toSessionResponses(sessions)})
}

// History handles GET /sessions?from=&to=&projectId=&limit=&offset=.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	projectID, err := queryUUID(r, "projectId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := tracker.GetHistoryInput{
		From:      from,
		To:        to,
		ProjectID: projectID,
		Limit:     queryInt(r, "limit", 0),
		Offset:    queryInt(r, "offset", 0),
	}

	sessions, total, err := h.svc.GetHistory(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Sessions: toSessionResponses(sessions),
		Total:    total,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.GetSession(r.Context(), sessionID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// UpdateNotes handles PATCH /sessions/{id}/notes.
func (h *SessionHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req updateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.UpdateNotes(r.Context(), tracker.UpdateNotesInput{
		SessionID: sessionID,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

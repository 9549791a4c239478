package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
	"github.com/heartmarshall/worktrack-backend/internal/service/stats"
	"github.com/heartmarshall/worktrack-backend/pkg/timex"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	GetTodaySummary(ctx context.Context) (domain.TodaySummary, error)
	GetWeeklyProgress(ctx context.Context) (domain.WeeklyProgress, error)
	GetStreak(ctx context.Context) (int, error)
	GetDashboard(ctx context.Context) (domain.Dashboard, error)
	GetWeeklyGoal(ctx context.Context) (*domain.WeeklyGoal, error)
	SetWeeklyGoal(ctx context.Context, input stats.SetWeeklyGoalInput) (*domain.WeeklyGoal, error)
	GetRangeStats(ctx context.Context, input stats.GetRangeStatsInput) ([]domain.DailyStat, error)
}

// StatsHandler serves aggregate and goal REST endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type todayResponse struct {
	TotalMinutes     int  `json:"totalMinutes"`
	SessionCount     int  `json:"sessionCount"`
	HasActiveSession bool `json:"hasActiveSession"`
}

type weeklyResponse struct {
	WeekStart      time.Time `json:"weekStart"`
	TotalMinutes   int       `json:"totalMinutes"`
	Formatted      string    `json:"formatted"`
	Hours          float64   `json:"hours"`
	TargetHours    int       `json:"targetHours"`
	Percentage     int       `json:"percentage"`
	RemainingHours float64   `json:"remainingHours"`
}

type goalResponse struct {
	WeekStart   time.Time `json:"weekStart"`
	TargetHours int       `json:"targetHours"`
}

type setGoalRequest struct {
	TargetHours int `json:"targetHours"`
}

type dayResponse struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"totalMinutes"`
	SessionCount int    `json:"sessionCount"`
}

type dashboardResponse struct {
	Today          todayResponse      `json:"today"`
	Weekly         weeklyResponse     `json:"weekly"`
	StreakDays     int                `json:"streakDays"`
	ActiveSession  *sessionResponse   `json:"activeSession,omitempty"`
	RecentSessions []*sessionResponse `json:"recentSessions"`
}

// Today handles GET /stats/today.
func (h *StatsHandler) Today(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetTodaySummary(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodayResponse(summary))
}

// Week handles GET /stats/week.
func (h *StatsHandler) Week(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.GetWeeklyProgress(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWeeklyResponse(progress))
}

// Streak handles GET /stats/streak.
func (h *StatsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.GetStreak(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"streakDays": days})
}

// Dashboard handles GET /dashboard.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Today:          toTodayResponse(d.Today),
		Weekly:         toWeeklyResponse(d.Weekly),
		StreakDays:     d.StreakDays,
		ActiveSession:  toSessionResponse(d.ActiveSession),
		RecentSessions: toSessionResponses(d.RecentSessions),
	})
}

// GetGoal handles GET /goal.
func (h *StatsHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.svc.GetWeeklyGoal(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{WeekStart: goal.WeekStart, TargetHours: goal.TargetHours})
}

// SetGoal handles PUT /goal. The goal applies to the current week only.
func (h *StatsHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.svc.SetWeeklyGoal(r.Context(), stats.SetWeeklyGoalInput{TargetHours: req.TargetHours})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{WeekStart: goal.WeekStart, TargetHours: goal.TargetHours})
}

// Range handles GET /stats/range?from=&to=.
func (h *StatsHandler) Range(w http.ResponseWriter, r *http.Request) {
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
	if from == nil || to == nil {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	days, err := h.svc.GetRangeStats(r.Context(), stats.GetRangeStatsInput{From: *from, To: *to})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]dayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dayResponse{
			Date:         d.Date.Format("2006-01-02"),
			TotalMinutes: d.TotalMinutes,
			SessionCount: d.SessionCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]dayResponse{"days": out})
}

func toTodayResponse(s domain.TodaySummary) todayResponse {
	return todayResponse{
		TotalMinutes:     s.TotalMinutes,
		SessionCount:     s.SessionCount,
		HasActiveSession: s.HasActiveSession,
	}
}

func toWeeklyResponse(p domain.WeeklyProgress) weeklyResponse {
	return weeklyResponse{
		WeekStart:      p.WeekStart,
		TotalMinutes:   p.TotalMinutes,
		Formatted:      timex.FormatMinutes(p.TotalMinutes),
		Hours:          p.Hours,
		TargetHours:    p.TargetHours,
		Percentage:     p.Percentage,
		RemainingHours: p.RemainingHours,
	}
}

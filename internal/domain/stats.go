package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyStat is the materialized per-user per-day aggregate, updated
// incrementally on each punch-out. It is a cache, not authoritative:
// it must always equal the sum of completed sessions for that date.
type DailyStat struct {
	UserID       uuid.UUID
	Date         time.Time // calendar day at midnight in the user's timezone, stored UTC
	TotalMinutes int
	SessionCount int
}

// WeeklyGoal is the per-week target in hours. Weeks start Monday.
type WeeklyGoal struct {
	UserID      uuid.UUID
	WeekStart   time.Time
	TargetHours int
	UpdatedAt   time.Time
}

// DefaultWeeklyGoalHours is used when no goal row exists for the week.
const DefaultWeeklyGoalHours = 40

// TodaySummary is the live figure for the current calendar day:
// materialized completed minutes plus the elapsed minutes of an active
// session started today, recomputed on every read.
type TodaySummary struct {
	TotalMinutes     int
	SessionCount     int
	HasActiveSession bool
}

// WeeklyProgress reports the Monday-start week total against the goal.
// Hours keeps full precision; display layers floor it themselves.
type WeeklyProgress struct {
	WeekStart      time.Time
	TotalMinutes   int
	Hours          float64
	TargetHours    int
	Percentage     int
	RemainingHours float64
}

// Dashboard is a read-only composite of the aggregate views plus the
// two raw session reads.
type Dashboard struct {
	Today          TodaySummary
	Weekly         WeeklyProgress
	StreakDays     int
	ActiveSession  *WorkSession
	RecentSessions []*WorkSession
}

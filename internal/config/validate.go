package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be within 4..31 (got %d)", c.Auth.PasswordHashCost)
	}

	if err := c.Tracker.validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}

	return nil
}

func (t *TrackerConfig) validate() error {
	if t.MinSessionMinutes < 1 {
		return fmt.Errorf("min_session_minutes must be >= 1 (got %d)", t.MinSessionMinutes)
	}
	if t.DefaultGoalHours < 1 || t.DefaultGoalHours > 168 {
		return fmt.Errorf("default_goal_hours must be within 1..168 (got %d)", t.DefaultGoalHours)
	}
	if t.RecentSessionsLimit <= 0 {
		return fmt.Errorf("recent_sessions_limit must be > 0 (got %d)", t.RecentSessionsLimit)
	}
	if t.DashboardRecentLimit <= 0 {
		return fmt.Errorf("dashboard_recent_limit must be > 0 (got %d)", t.DashboardRecentLimit)
	}
	if t.StreakLookbackDays <= 0 {
		return fmt.Errorf("streak_lookback_days must be > 0 (got %d)", t.StreakLookbackDays)
	}
	if t.HistoryMaxLimit <= 0 {
		return fmt.Errorf("history_max_limit must be > 0 (got %d)", t.HistoryMaxLimit)
	}
	return nil
}

package user

import "time"

// MaxDevices is how many distinct device identifiers an account may
// sign in from
const MaxDevices = 4

// User represents an account in the system
type User struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	Name             string                 `json:"name"`
	PasswordHash     string                 `json:"-"` // Not exposed in JSON
	Plan             string                 `json:"plan"`
	PremiumExpiresAt *time.Time             `json:"premium_expires_at,omitempty"`
	DeviceIDs        []string               `json:"device_ids"`
	DailyUsage       DailyUsage             `json:"daily_usage"`
	Preferences      map[string]interface{} `json:"preferences"`
	AssistantConfig  map[string]interface{} `json:"assistant_config"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// DailyUsage tracks per-day consumption of metered features. Date is
// the UTC day (YYYY-MM-DD) the counters belong to; counters from a
// previous day are stale and reset on the next check.
type DailyUsage struct {
	Date             string `json:"date"`
	AIAnalysisCount  int    `json:"ai_analysis_count"`
	ChatUploadsCount int    `json:"chat_uploads_count"`
}

// UsageDate formats t as a daily usage date key
func UsageDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

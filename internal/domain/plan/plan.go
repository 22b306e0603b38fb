package plan

// Plan names
const (
	Free    = "free"
	Premium = "premium"
)

// Unlimited marks a counter without a cap
const Unlimited = -1

// Counter identifies a plan-limited quantity
type Counter string

const (
	CounterProjects    Counter = "max_projects"
	CounterNotes       Counter = "max_notes"
	CounterTasks       Counter = "max_tasks"
	CounterHabits      Counter = "max_habits"
	CounterAIAnalysis  Counter = "ai_analysis_per_day"
	CounterChatUploads Counter = "chat_uploads_per_day"
)

// Daily reports whether the counter resets at each UTC day boundary
func (c Counter) Daily() bool {
	return c == CounterAIAnalysis || c == CounterChatUploads
}

// Limits describes the caps and feature flags of a plan
type Limits struct {
	MaxProjects       int  `json:"max_projects"`
	MaxNotes          int  `json:"max_notes"`
	MaxTasks          int  `json:"max_tasks"`
	MaxHabits         int  `json:"max_habits"`
	AIAnalysisPerDay  int  `json:"ai_analysis_per_day"`
	ChatUploadsPerDay int  `json:"chat_uploads_per_day"`
	VoiceCommands     bool `json:"voice_commands"`
	AdvancedAI        bool `json:"advanced_ai"`
	PrioritySupport   bool `json:"priority_support"`
	CustomCategories  bool `json:"custom_categories"`
}

// The table is compiled in: plans are a product decision, not data.
var limits = map[string]Limits{
	Free: {
		MaxProjects:       10,
		MaxNotes:          50,
		MaxTasks:          100,
		MaxHabits:         5,
		AIAnalysisPerDay:  1,
		ChatUploadsPerDay: 1,
	},
	Premium: {
		MaxProjects:       Unlimited,
		MaxNotes:          Unlimited,
		MaxTasks:          Unlimited,
		MaxHabits:         Unlimited,
		AIAnalysisPerDay:  Unlimited,
		ChatUploadsPerDay: Unlimited,
		VoiceCommands:     true,
		AdvancedAI:        true,
		PrioritySupport:   true,
		CustomCategories:  true,
	},
}

// ForPlan returns the limits for the named plan. Unknown plans are
// treated as free.
func ForPlan(name string) Limits {
	if l, ok := limits[name]; ok {
		return l
	}
	return limits[Free]
}

// All returns the full plan table, keyed by plan name
func All() map[string]Limits {
	out := make(map[string]Limits, len(limits))
	for k, v := range limits {
		out[k] = v
	}
	return out
}

// Cap returns the cap of the given counter under these limits
func (l Limits) Cap(c Counter) int {
	switch c {
	case CounterProjects:
		return l.MaxProjects
	case CounterNotes:
		return l.MaxNotes
	case CounterTasks:
		return l.MaxTasks
	case CounterHabits:
		return l.MaxHabits
	case CounterAIAnalysis:
		return l.AIAnalysisPerDay
	case CounterChatUploads:
		return l.ChatUploadsPerDay
	default:
		return Unlimited
	}
}

package eventlog

import "time"

const (
	SourceUser  = "user"
	SourceAgent = "agent"
)

const (
	EventUserMessage        = "user_message"
	EventAssistantMessage   = "assistant_message"
	EventMemoryAdd          = "memory_add"
	EventMemoryUpdate       = "memory_update"
	EventMemoryDelete       = "memory_delete"
	EventMemoryPrioritySet  = "memory_priority_set"
	EventStageChange        = "stage_change"
	EventShowCandidates     = "show_candidates"
	EventProductDetailEnter = "product_detail_enter"
	EventFinalDecision      = "final_decision"
)

// Record is one appended row of the raw event sheet. Optional fields
// are event-specific and left empty otherwise.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Condition string    `json:"condition"`
	UserName  string    `json:"user_name"`
	Phase     string    `json:"phase"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`

	Text        string `json:"text,omitempty"`
	Value       string `json:"value,omitempty"`
	NewValue    string `json:"new_value,omitempty"`
	OldValue    string `json:"old_value,omitempty"`
	Index       int    `json:"index"`
	MemoryCount int    `json:"memory_count"`
}

// Summary is the one-per-session aggregate row.
type Summary struct {
	SessionID    string `json:"session_id"`
	Nickname     string `json:"nickname"`
	Phone        string `json:"phone"`
	PrimaryStyle string `json:"primary_style"`

	TotalTurns   int `json:"total_turns"`
	ExploreTurns int `json:"explore_turns"`
	SummaryTurns int `json:"summary_turns"`
	CompareTurns int `json:"compare_turns"`
	DetailTurns  int `json:"detail_turns"`

	MemAdd       int `json:"mem_add"`
	MemDelete    int `json:"mem_delete"`
	MemUpdate    int `json:"mem_update"`
	MemEditTotal int `json:"mem_edit_total"`

	UserAddCount    int `json:"user_add_count"`
	UserDeleteCount int `json:"user_delete_count"`
	HumanEditTotal  int `json:"human_edit_total"`

	TotalDurationSec float64 `json:"total_duration_sec"`
	FinalChoice      string  `json:"final_choice"`
	DecisionTimeSec  float64 `json:"decision_time_sec"`
}

package session

import (
	"fmt"
	"sync"
	"time"

	"shoppingagent/app/catalog"
	"shoppingagent/app/service/classify"
	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/memory"
)

type Phase string

const (
	PhaseExplore          Phase = "explore"
	PhaseSummary          Phase = "summary"
	PhaseComparison       Phase = "comparison"
	PhaseProductDetail    Phase = "product_detail"
	PhasePurchaseDecision Phase = "purchase_decision"
)

const (
	StylePrice       = "price"
	StyleDesign      = "design"
	StylePerformance = "performance"
)

type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// BootstrapInput is the pre-chat questionnaire that seeds the initial
// memory before the dialogue core ever runs.
type BootstrapInput struct {
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	// Style is one of price|design|performance.
	Style string `json:"style"`
	Color string `json:"color"`
}

// Session owns all per-user conversation state. Nothing here is shared
// across sessions; the mutex serializes turns so one input is fully
// handled before the next is accepted.
type Session struct {
	mu sync.Mutex

	ID           string
	Nickname     string
	Phone        string
	PrimaryStyle string
	CreatedAt    time.Time

	Phase       Phase
	Memory      *memory.Store
	SummaryText string

	PendingQuestion classify.Topic
	AskedTopics     []classify.Topic
	SoundAsked      bool

	Recommended       []catalog.Product
	Selected          *catalog.Product
	Final             *catalog.Product
	ProductDetailTurn int

	Messages       []Message
	Logs           []eventlog.Record
	SummaryWritten bool
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) TopicAsked(topic classify.Topic) bool {
	for _, t := range s.AskedTopics {
		if t == topic {
			return true
		}
	}

	return false
}

// FindRecommended resolves a candidate by name within the current
// recommendation list. Products outside the list cannot be selected.
func (s *Session) FindRecommended(name string) (catalog.Product, int, error) {
	for i, p := range s.Recommended {
		if p.Name == name {
			return p, i, nil
		}
	}

	return catalog.Product{}, 0, fmt.Errorf("product %q is not among the recommended candidates", name)
}

// NewRecord pre-fills the session-scoped fields of an event row.
func (s *Session) NewRecord(eventType, source string) eventlog.Record {
	return eventlog.Record{
		Timestamp: time.Now(),
		SessionID: s.ID,
		UserName:  s.Nickname,
		Phase:     string(s.Phase),
		EventType: eventType,
		Source:    source,
	}
}

// Clone deep-copies the mutable conversation state. Turns are processed
// against a clone and committed back, so a failed turn never leaves a
// partial mutation behind.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:           s.ID,
		Nickname:     s.Nickname,
		Phone:        s.Phone,
		PrimaryStyle: s.PrimaryStyle,
		CreatedAt:    s.CreatedAt,

		Phase:       s.Phase,
		Memory:      s.Memory.Clone(),
		SummaryText: s.SummaryText,

		PendingQuestion: s.PendingQuestion,
		AskedTopics:     append([]classify.Topic(nil), s.AskedTopics...),
		SoundAsked:      s.SoundAsked,

		Recommended:       append([]catalog.Product(nil), s.Recommended...),
		ProductDetailTurn: s.ProductDetailTurn,

		Messages:       append([]Message(nil), s.Messages...),
		Logs:           append([]eventlog.Record(nil), s.Logs...),
		SummaryWritten: s.SummaryWritten,
	}

	if s.Selected != nil {
		selected := *s.Selected
		clone.Selected = &selected
	}
	if s.Final != nil {
		final := *s.Final
		clone.Final = &final
	}

	return clone
}

// CommitFrom copies the conversation state of a processed clone back
// into the canonical session. The caller holds the session lock.
func (s *Session) CommitFrom(c *Session) {
	s.Phase = c.Phase
	s.Memory = c.Memory
	s.SummaryText = c.SummaryText
	s.PendingQuestion = c.PendingQuestion
	s.AskedTopics = c.AskedTopics
	s.SoundAsked = c.SoundAsked
	s.Recommended = c.Recommended
	s.Selected = c.Selected
	s.Final = c.Final
	s.ProductDetailTurn = c.ProductDetailTurn
	s.Messages = c.Messages
	s.Logs = c.Logs
	s.SummaryWritten = c.SummaryWritten
}

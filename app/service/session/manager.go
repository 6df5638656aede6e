package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"

	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/memory"
)

const greetingTemplate = "안녕하세요 %s님! 😊 저는 당신의 AI 쇼핑 도우미예요.\n" +
	"블루투스 헤드셋을 추천해달라고 하셨으니, 이와 관련해 %s님에 대해 더 파악해볼게요. " +
	"주로 어떤 용도로 헤드셋을 사용하실 예정인가요?"

var styleSeeds = map[string]string{
	StylePrice:       "가성비, 가격을 중요하게 생각하는 편이에요.",
	StyleDesign:      "(가장 중요) 디자인/스타일을 최우선으로 고려하고 있어요.",
	StylePerformance: "(가장 중요) 성능/스펙을 우선하는 쇼핑 성향이에요.",
}

// Manager keeps the live sessions. Sessions are fully independent;
// only the map itself needs synchronization.
type Manager struct {
	eventSvc *eventlog.Service

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(di *do.Injector) (*Manager, error) {
	return &Manager{
		eventSvc: do.MustInvoke[*eventlog.Service](di),
		sessions: make(map[string]*Session),
	}, nil
}

// Create bootstraps a new session: seeds the initial memory from the
// questionnaire answers and posts the greeting.
func (m *Manager) Create(input BootstrapInput) (*Session, error) {
	if input.Nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}

	seed, ok := styleSeeds[input.Style]
	if !ok {
		return nil, fmt.Errorf("unknown shopping style %q", input.Style)
	}

	s := &Session{
		ID:           uuid.NewString(),
		Nickname:     input.Nickname,
		Phone:        input.Phone,
		PrimaryStyle: input.Style,
		CreatedAt:    time.Now(),
		Phase:        PhaseExplore,
		Memory:       memory.NewStore(),
	}

	m.seedMemory(s, seed)
	if input.Color != "" {
		m.seedMemory(s, fmt.Sprintf("색상은 %s 계열을 선호해요.", input.Color))
	}

	greeting := fmt.Sprintf(greetingTemplate, s.Nickname, s.Nickname)
	s.Messages = append(s.Messages, Message{Role: "assistant", Content: greeting, Time: time.Now()})

	rec := s.NewRecord(eventlog.EventAssistantMessage, eventlog.SourceAgent)
	rec.Text = greeting
	s.Logs = append(s.Logs, rec)
	m.eventSvc.Append(rec)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Info("Session created",
		"session_id", s.ID,
		"style", s.PrimaryStyle,
		"memory_count", s.Memory.Len())

	return s, nil
}

func (m *Manager) seedMemory(s *Session, text string) {
	change := s.Memory.Add(text, false)
	if change.Kind == memory.ChangeNone {
		return
	}

	rec := s.NewRecord(eventlog.EventMemoryAdd, eventlog.SourceAgent)
	rec.NewValue = change.Text
	rec.MemoryCount = s.Memory.Len()
	s.Logs = append(s.Logs, rec)
	m.eventSvc.Append(rec)
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]

	return s, ok
}

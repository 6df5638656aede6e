package eventlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/do"

	"shoppingagent/app/config"
)

const (
	rawFileName     = "a_raw.jsonl"
	summaryFileName = "session_summary.jsonl"
)

// Service is the append-only event sink, one JSON record per line.
// Records from concurrent sessions are serialized by the mutex so rows
// never interleave.
type Service struct {
	cfg *config.Config
	mu  sync.Mutex
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Service{cfg: cfg}, nil
}

func (s *Service) appendLine(fileName string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(filepath.Join(s.cfg.Data.Dir, fileName),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fileName, err)
	}
	defer file.Close()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err = file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	return nil
}

// Append writes one raw event row. Sink failures are reported to the
// operator channel and swallowed: logging must never break a turn.
func (s *Service) Append(rec Record) {
	rec.Condition = s.cfg.Data.Condition

	if err := s.appendLine(rawFileName, rec); err != nil {
		slog.Error("Failed to append event record",
			"event_type", rec.EventType,
			"session_id", rec.SessionID,
			"error", err,
			"telegram", true)
	}
}

// WriteSummary appends the per-session aggregate row. Unlike Append the
// error is returned so the caller can leave its written flag unset and
// retry on a later trigger.
func (s *Service) WriteSummary(sum Summary) error {
	if err := s.appendLine(summaryFileName, sum); err != nil {
		slog.Error("Failed to append session summary",
			"session_id", sum.SessionID,
			"error", err,
			"telegram", true)

		return err
	}

	return nil
}

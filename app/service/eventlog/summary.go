package eventlog

import (
	"github.com/elliotchance/pie/v2"
)

func countBy(logs []Record, match func(Record) bool) int {
	count := 0
	for _, e := range logs {
		if match(e) {
			count++
		}
	}

	return count
}

// BuildSummary aggregates a session's in-memory event history into the
// one-shot summary row.
func BuildSummary(sessionID, nickname, phone, primaryStyle string, logs []Record) Summary {
	sum := Summary{
		SessionID:    sessionID,
		Nickname:     nickname,
		Phone:        phone,
		PrimaryStyle: primaryStyle,
	}

	if len(logs) == 0 {
		return sum
	}

	sum.TotalTurns = countBy(logs, func(e Record) bool {
		return e.EventType == EventUserMessage || e.EventType == EventAssistantMessage
	})

	userTurnIn := func(phase string) int {
		return countBy(logs, func(e Record) bool {
			return e.Phase == phase && e.EventType == EventUserMessage
		})
	}
	sum.ExploreTurns = userTurnIn("explore")
	sum.SummaryTurns = userTurnIn("summary")
	sum.CompareTurns = userTurnIn("comparison")
	sum.DetailTurns = userTurnIn("product_detail")

	sum.MemAdd = countBy(logs, func(e Record) bool { return e.EventType == EventMemoryAdd })
	sum.MemDelete = countBy(logs, func(e Record) bool { return e.EventType == EventMemoryDelete })
	sum.MemUpdate = countBy(logs, func(e Record) bool { return e.EventType == EventMemoryUpdate })
	sum.MemEditTotal = sum.MemAdd + sum.MemDelete + sum.MemUpdate

	sum.UserAddCount = countBy(logs, func(e Record) bool {
		return e.EventType == EventMemoryAdd && e.Source == SourceUser
	})
	sum.UserDeleteCount = countBy(logs, func(e Record) bool {
		return e.EventType == EventMemoryDelete && e.Source == SourceUser
	})
	sum.HumanEditTotal = sum.UserAddCount + sum.UserDeleteCount

	first := logs[0].Timestamp
	last := logs[0].Timestamp
	for _, e := range logs {
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	sum.TotalDurationSec = last.Sub(first).Seconds()

	finalIdx := pie.FindFirstUsing(logs, func(e Record) bool {
		return e.EventType == EventFinalDecision
	})
	if finalIdx >= 0 {
		sum.FinalChoice = logs[finalIdx].Value

		recoIdx := pie.FindFirstUsing(logs, func(e Record) bool {
			return e.EventType == EventShowCandidates
		})
		if recoIdx >= 0 {
			sum.DecisionTimeSec = logs[finalIdx].Timestamp.Sub(logs[recoIdx].Timestamp).Seconds()
		}
	}

	return sum
}

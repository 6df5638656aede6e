package eventlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryEmpty(t *testing.T) {
	sum := BuildSummary("sid", "철수", "1234", "price", nil)

	require.Equal(t, "sid", sum.SessionID)
	require.Equal(t, "철수", sum.Nickname)
	require.Zero(t, sum.TotalTurns)
	require.Zero(t, sum.TotalDurationSec)
	require.Empty(t, sum.FinalChoice)
}

func TestBuildSummaryAggregates(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := func(offset time.Duration, phase, eventType, source string) Record {
		return Record{
			Timestamp: start.Add(offset),
			Phase:     phase,
			EventType: eventType,
			Source:    source,
		}
	}

	logs := []Record{
		rec(0, "explore", EventAssistantMessage, SourceAgent),
		rec(10*time.Second, "explore", EventUserMessage, SourceUser),
		rec(11*time.Second, "explore", EventMemoryAdd, SourceAgent),
		rec(12*time.Second, "explore", EventAssistantMessage, SourceAgent),
		rec(30*time.Second, "explore", EventUserMessage, SourceUser),
		rec(31*time.Second, "explore", EventMemoryAdd, SourceUser),
		rec(40*time.Second, "explore", EventStageChange, SourceAgent),
		rec(50*time.Second, "summary", EventUserMessage, SourceUser),
		rec(55*time.Second, "summary", EventMemoryUpdate, SourceUser),
		rec(60*time.Second, "comparison", EventShowCandidates, SourceAgent),
		rec(70*time.Second, "comparison", EventUserMessage, SourceUser),
		rec(75*time.Second, "comparison", EventMemoryDelete, SourceUser),
		rec(80*time.Second, "product_detail", EventUserMessage, SourceUser),
		func() Record {
			r := rec(100*time.Second, "product_detail", EventFinalDecision, SourceUser)
			r.Value = "Sony WH-1000XM5"
			return r
		}(),
	}

	sum := BuildSummary("sid", "철수", "1234", "design", logs)

	assert.Equal(t, 7, sum.TotalTurns)
	assert.Equal(t, 2, sum.ExploreTurns)
	assert.Equal(t, 1, sum.SummaryTurns)
	assert.Equal(t, 1, sum.CompareTurns)
	assert.Equal(t, 1, sum.DetailTurns)

	assert.Equal(t, 2, sum.MemAdd)
	assert.Equal(t, 1, sum.MemDelete)
	assert.Equal(t, 1, sum.MemUpdate)
	assert.Equal(t, 4, sum.MemEditTotal)

	assert.Equal(t, 1, sum.UserAddCount)
	assert.Equal(t, 1, sum.UserDeleteCount)
	assert.Equal(t, 2, sum.HumanEditTotal)

	assert.InDelta(t, 100, sum.TotalDurationSec, 0.001)
	assert.Equal(t, "Sony WH-1000XM5", sum.FinalChoice)
	assert.InDelta(t, 40, sum.DecisionTimeSec, 0.001)
}

func TestBuildSummaryNoDecision(t *testing.T) {
	logs := []Record{
		{Timestamp: time.Now(), Phase: "explore", EventType: EventUserMessage, Source: SourceUser},
	}

	sum := BuildSummary("sid", "철수", "1234", "price", logs)

	require.Empty(t, sum.FinalChoice)
	require.Zero(t, sum.DecisionTimeSec)
}

package dialogue

import (
	"fmt"

	"shoppingagent/app/service/session"
)

// Event is a phase-relevant occurrence, either derived from the user's
// text or fired by an explicit UI action.
type Event string

const (
	// EventSummaryReady fires when the explore phase has enough
	// confirmed criteria (budget included) to present the summary.
	EventSummaryReady Event = "summary_ready"
	// EventSummaryConfirm is the user accepting the summary, by text
	// cue or button.
	EventSummaryConfirm Event = "summary_confirm"
	EventSelectProduct  Event = "select_product"
	EventBackToList     Event = "back_to_list"
	EventDetailInvalid  Event = "detail_invalid"
	EventFinalDecision  Event = "final_decision"
)

// transitions is the single source of truth for phase changes:
// phase × event → next phase. Anything absent is an invalid transition.
var transitions = map[session.Phase]map[Event]session.Phase{
	session.PhaseExplore: {
		EventSummaryReady: session.PhaseSummary,
	},
	session.PhaseSummary: {
		EventSummaryConfirm: session.PhaseComparison,
	},
	session.PhaseComparison: {
		EventSelectProduct: session.PhaseProductDetail,
		EventFinalDecision: session.PhasePurchaseDecision,
	},
	session.PhaseProductDetail: {
		EventBackToList:    session.PhaseComparison,
		EventDetailInvalid: session.PhaseComparison,
		EventFinalDecision: session.PhasePurchaseDecision,
	},
}

func nextPhase(current session.Phase, event Event) (session.Phase, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}

	return "", fmt.Errorf("no transition for event %q in phase %q", event, current)
}

package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/do"

	"shoppingagent/app/service/agent"
	"shoppingagent/app/service/classify"
	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/memory"
	"shoppingagent/app/service/recommend"
	"shoppingagent/app/service/session"
)

type extractor interface {
	Extract(ctx context.Context, userText, memoryText string) ([]string, error)
}

type replier interface {
	Reply(ctx context.Context, in agent.ReplyInput) (string, error)
	ProductDetail(ctx context.Context, in agent.DetailInput) (string, error)
}

// TurnOutput is what one processed input produced: the assistant
// messages appended this turn and any memory notifications for the UI.
type TurnOutput struct {
	Messages      []string `json:"messages"`
	Notifications []string `json:"notifications"`
	Phase         string   `json:"phase"`
}

// Service is the phase controller. It owns every transition of the
// dialogue and is the only writer of conversation state after bootstrap.
type Service struct {
	events    *eventlog.Service
	extractor extractor
	replier   replier
}

func New(di *do.Injector) (*Service, error) {
	agentSvc := do.MustInvoke[*agent.Service](di)

	return &Service{
		events:    do.MustInvoke[*eventlog.Service](di),
		extractor: agentSvc.Extractor,
		replier:   agentSvc.Replier,
	}, nil
}

// HandleTurn processes one user input against the session. The turn
// runs on a clone and is committed only on success, so an extractor or
// replier failure leaves the session exactly as it was.
func (d *Service) HandleTurn(ctx context.Context, s *session.Session, text string) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return &TurnOutput{Phase: string(s.Phase)}, nil
	}

	base := len(s.Logs)
	work := s.Clone()
	out := &TurnOutput{}

	work.Messages = append(work.Messages, session.Message{
		Role:    "user",
		Content: text,
		Time:    time.Now(),
	})

	rec := work.NewRecord(eventlog.EventUserMessage, eventlog.SourceUser)
	rec.Text = text
	rec.MemoryCount = work.Memory.Len()
	work.Logs = append(work.Logs, rec)

	if err := d.processTurn(ctx, work, text, out); err != nil {
		return nil, err
	}

	s.CommitFrom(work)

	for _, r := range s.Logs[base:] {
		d.events.Append(r)
	}

	out.Phase = string(s.Phase)

	return out, nil
}

func (d *Service) processTurn(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	switch w.Phase {
	case session.PhaseExplore:
		return d.handleExplore(ctx, w, text, out)
	case session.PhaseSummary:
		return d.handleSummary(ctx, w, text, out)
	case session.PhaseComparison:
		return d.handleComparison(ctx, w, text, out)
	case session.PhaseProductDetail:
		return d.handleDetail(ctx, w, text, out)
	case session.PhasePurchaseDecision:
		d.say(w, out, msgAlreadyClosed)

		return nil
	default:
		return fmt.Errorf("unknown phase %q", w.Phase)
	}
}

func (d *Service) handleExplore(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	if w.PendingQuestion != classify.TopicNone {
		topic := w.PendingQuestion

		if classify.IsNegativeResponse(text) {
			w.AskedTopics = append(w.AskedTopics, topic)
			w.PendingQuestion = classify.TopicNone
			d.say(w, out, msgNextCriterion)

			return nil
		}

		if classify.IsAffirmativeResponse(text) {
			if seed, ok := topicSeeds[topic]; ok {
				change := w.Memory.Add(seed, true)
				d.recordChange(w, out, change, eventlog.SourceAgent)
			}

			w.AskedTopics = append(w.AskedTopics, topic)
			w.PendingQuestion = classify.TopicNone
			d.say(w, out, msgAcknowledge)

			return nil
		}

		// Any other answer closes the question and falls through to
		// the normal pipeline.
		w.AskedTopics = append(w.AskedTopics, topic)
		w.PendingQuestion = classify.TopicNone
	}

	if classify.IsDriftStatement(text) {
		d.say(w, out, msgDrift)

		return nil
	}

	if err := d.extractMemories(ctx, w, text, out); err != nil {
		return err
	}

	hasBudget := memory.HasBudget(w.Memory.Items())

	if classify.IsRecommendRequest(text) {
		w.SummaryText = CriteriaSummary(w.Nickname, w.Memory.Items())

		if hasBudget {
			if err := d.changePhase(w, EventSummaryReady); err != nil {
				return err
			}
			d.say(w, out, msgSummaryIntro)
		} else {
			w.PendingQuestion = classify.TopicBudget
			d.say(w, out, msgAskBudget)
		}

		return nil
	}

	if w.Memory.Len() >= 5 {
		if hasBudget {
			w.SummaryText = CriteriaSummary(w.Nickname, w.Memory.Items())
			if err := d.changePhase(w, EventSummaryReady); err != nil {
				return err
			}
			d.say(w, out, msgSummaryIntro)
		} else {
			w.PendingQuestion = classify.TopicBudget
			d.say(w, out, msgAskBudgetEnough)
		}

		return nil
	}

	reply, err := d.replier.Reply(ctx, d.replyInput(w, text))
	if err != nil {
		return fmt.Errorf("failed to generate reply: %w", err)
	}

	reply = agent.CorrectReply(reply, d.replyInput(w, text))
	d.say(w, out, reply)

	topic := classify.InferTopic(reply)

	// A repeated sound question is suppressed for the whole session.
	if topic == classify.TopicSound {
		if w.SoundAsked {
			w.PendingQuestion = classify.TopicNone

			return nil
		}

		w.SoundAsked = true
	}

	if topic != classify.TopicNone && w.TopicAsked(topic) {
		w.PendingQuestion = classify.TopicNone

		return nil
	}

	w.PendingQuestion = topic

	return nil
}

func (d *Service) handleSummary(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	if classify.IsSummaryConfirm(text) {
		if err := d.changePhase(w, EventSummaryConfirm); err != nil {
			return err
		}
		d.say(w, out, msgComparisonGo)
		d.announceCandidates(w, out)

		return nil
	}

	if classify.IsDriftStatement(text) {
		d.say(w, out, msgDrift)

		return nil
	}

	// Criteria can still be edited by chat here; each accepted change
	// rebuilds the summary text.
	if err := d.extractMemories(ctx, w, text, out); err != nil {
		return err
	}

	if len(out.Notifications) > 0 {
		d.say(w, out, msgAcknowledge)

		return nil
	}

	d.say(w, out, msgSummaryEdit)

	return nil
}

func (d *Service) handleComparison(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	if classify.IsDriftStatement(text) {
		d.say(w, out, msgDrift)

		return nil
	}

	if err := d.extractMemories(ctx, w, text, out); err != nil {
		return err
	}

	// The explore-only stage filter does not apply here; a product
	// question deserves its genuine answer.
	reply, err := d.replier.Reply(ctx, d.replyInput(w, text))
	if err != nil {
		return fmt.Errorf("failed to generate reply: %w", err)
	}

	d.say(w, out, reply)

	return nil
}

func (d *Service) handleDetail(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	if w.Selected == nil {
		if err := d.changePhase(w, EventDetailInvalid); err != nil {
			return err
		}
		d.say(w, out, msgNoSelection)

		return nil
	}

	budget, hasBudget := memory.ExtractBudget(w.Memory.Items())

	reply, err := d.replier.ProductDetail(ctx, agent.DetailInput{
		Product:   *w.Selected,
		UserText:  text,
		Budget:    budget,
		HasBudget: hasBudget,
		FirstTurn: w.ProductDetailTurn == 0,
	})
	if err != nil {
		return fmt.Errorf("failed to generate product detail reply: %w", err)
	}

	w.ProductDetailTurn++
	d.say(w, out, reply)

	return nil
}

// extractMemories runs the extraction agent and applies every new
// statement. Statements already present verbatim are skipped before the
// store's own dedup runs.
func (d *Service) extractMemories(ctx context.Context, w *session.Session, text string, out *TurnOutput) error {
	extracted, err := d.extractor.Extract(ctx, text, w.Memory.Format())
	if err != nil {
		return fmt.Errorf("failed to extract memories: %w", err)
	}

	for _, mem := range extracted {
		if w.Memory.Contains(mem) {
			continue
		}

		change := w.Memory.Add(mem, true)
		if change.Kind == memory.ChangeNone {
			continue
		}

		d.recordChange(w, out, change, eventlog.SourceAgent)

		if change.Kind == memory.ChangeAdded {
			out.Notifications[len(out.Notifications)-1] =
				fmt.Sprintf("🧩 '%s' 내용을 기억해둘게요.", mem)
		}
	}

	return nil
}

// recordChange logs one memory mutation and applies the phase-specific
// side effects: the summary text and the recommendation list always
// reflect the current store.
func (d *Service) recordChange(w *session.Session, out *TurnOutput, change memory.Change, source string) {
	if change.Kind == memory.ChangeNone {
		return
	}

	var rec eventlog.Record

	switch change.Kind {
	case memory.ChangeAdded:
		rec = w.NewRecord(eventlog.EventMemoryAdd, source)
		rec.NewValue = change.Text
		if change.Announce {
			out.Notifications = append(out.Notifications, noticeAdded)
		}
	case memory.ChangePromoted:
		rec = w.NewRecord(eventlog.EventMemoryPrioritySet, source)
		rec.NewValue = change.Text
		if change.Announce {
			out.Notifications = append(out.Notifications, noticePriority)
		}
	case memory.ChangeUpdated:
		rec = w.NewRecord(eventlog.EventMemoryUpdate, source)
		rec.NewValue = change.Text
		rec.OldValue = change.OldText
		out.Notifications = append(out.Notifications, noticeUpdated)
	case memory.ChangeDeleted:
		rec = w.NewRecord(eventlog.EventMemoryDelete, source)
		rec.OldValue = change.OldText
		out.Notifications = append(out.Notifications, noticeDeleted)
	}

	rec.Index = change.Index
	rec.MemoryCount = w.Memory.Len()
	w.Logs = append(w.Logs, rec)

	switch w.Phase {
	case session.PhaseSummary:
		w.SummaryText = CriteriaSummary(w.Nickname, w.Memory.Items())
	case session.PhaseComparison, session.PhaseProductDetail:
		w.Recommended = recommend.TopN(w.Memory.Items())
	}
}

// changePhase applies one transition from the table and logs it. Every
// phase change in the system goes through here.
func (d *Service) changePhase(w *session.Session, event Event) error {
	next, err := nextPhase(w.Phase, event)
	if err != nil {
		return err
	}

	w.Phase = next

	rec := w.NewRecord(eventlog.EventStageChange, eventlog.SourceAgent)
	rec.NewValue = string(next)
	rec.MemoryCount = w.Memory.Len()
	w.Logs = append(w.Logs, rec)

	return nil
}

// announceCandidates computes the top recommendations, logs them, and
// introduces each one in chat.
func (d *Service) announceCandidates(w *session.Session, out *TurnOutput) {
	w.Recommended = recommend.TopN(w.Memory.Items())

	names := make([]string, 0, len(w.Recommended))
	for _, p := range w.Recommended {
		names = append(names, p.Name)
	}

	rec := w.NewRecord(eventlog.EventShowCandidates, eventlog.SourceAgent)
	rec.Value = strings.Join(names, ",")
	rec.MemoryCount = w.Memory.Len()
	w.Logs = append(w.Logs, rec)

	d.say(w, out, fmt.Sprintf(
		"%s님 기준에 잘 맞는 후보 3가지를 골라봤어요. 하나씩 간단히 소개해드릴게요.", w.Nickname))

	items := w.Memory.Items()
	for idx, p := range w.Recommended {
		reason := recommend.Reason(p, items, w.Nickname)
		if i := strings.Index(reason, "\n"); i >= 0 {
			reason = reason[:i]
		}

		d.say(w, out, fmt.Sprintf(
			"%d번 후보 **%s** (약 %s원대)\n- 주요 특징: %s\n- 왜 어울릴까요? %s",
			idx+1, p.Name, formatPrice(p.Price), strings.Join(p.Tags, ", "), reason))
	}

	d.say(w, out,
		"관심 가는 제품을 고르시면 그 제품에 대해 제가 더 자세히 안내해드릴게요.\n\n"+
			"최종적으로 마음에 드는 제품을 정하셨다면 **'구매하러 가기'**로 결정을 진행해주세요.")
}

func (d *Service) say(w *session.Session, out *TurnOutput, text string) {
	w.Messages = append(w.Messages, session.Message{
		Role:    "assistant",
		Content: text,
		Time:    time.Now(),
	})

	rec := w.NewRecord(eventlog.EventAssistantMessage, eventlog.SourceAgent)
	rec.Text = text
	rec.MemoryCount = w.Memory.Len()
	w.Logs = append(w.Logs, rec)

	out.Messages = append(out.Messages, text)
}

func (d *Service) replyInput(w *session.Session, text string) agent.ReplyInput {
	items := w.Memory.Items()

	return agent.ReplyInput{
		Nickname:       w.Nickname,
		UserText:       text,
		MemoryText:     w.Memory.Format(),
		Explore:        w.Phase == session.PhaseExplore,
		PriceFirst:     w.PrimaryStyle == session.StylePrice,
		DesignPriority: designPriority(w),
		HasBudget:      memory.HasBudget(items),
		UsageKnown:     usageKnown(items),
	}
}

func designPriority(w *session.Session) bool {
	if w.PrimaryStyle == session.StyleDesign {
		return true
	}

	for _, it := range w.Memory.Items() {
		if !it.Priority {
			continue
		}

		for _, kw := range classify.DesignKeywords {
			if strings.Contains(it.Text, kw) {
				return true
			}
		}
	}

	return false
}

func usageKnown(items []memory.Item) bool {
	if len(items) < 2 {
		return false
	}

	for _, it := range items {
		for _, kw := range classify.UsageKeywords {
			if strings.Contains(it.Text, kw) {
				return true
			}
		}
	}

	return false
}

// formatPrice renders 199000 as "199,000".
func formatPrice(price int) string {
	s := fmt.Sprint(price)

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

package dialogue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppingagent/app/config"
	"shoppingagent/app/service/agent"
	"shoppingagent/app/service/classify"
	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/session"
)

type stubExtractor struct {
	memories []string
	err      error
	calls    int
}

func (s *stubExtractor) Extract(_ context.Context, _, _ string) ([]string, error) {
	s.calls++

	return s.memories, s.err
}

type stubReplier struct {
	reply string
	err   error
}

func (s *stubReplier) Reply(_ context.Context, _ agent.ReplyInput) (string, error) {
	return s.reply, s.err
}

func (s *stubReplier) ProductDetail(_ context.Context, in agent.DetailInput) (string, error) {
	return fmt.Sprintf("%s 관련 답변이에요.", in.Product.Name), nil
}

func newTestService(t *testing.T, ext extractor, rep replier) (*Service, *session.Session) {
	t.Helper()

	return newTestServiceWithStyle(t, ext, rep, session.StylePrice)
}

func newTestServiceWithStyle(t *testing.T, ext extractor, rep replier, style string) (*Service, *session.Session) {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, &config.Config{
		Data: config.Data{Dir: t.TempDir(), Condition: "A"},
	})
	do.Provide(di, eventlog.New)

	manager, err := session.NewManager(di)
	require.NoError(t, err)

	svc := &Service{
		events:    do.MustInvoke[*eventlog.Service](di),
		extractor: ext,
		replier:   rep,
	}

	sess, err := manager.Create(session.BootstrapInput{
		Nickname: "철수",
		Phone:    "1234",
		Style:    style,
	})
	require.NoError(t, err)

	return svc, sess
}

func hasEvent(logs []eventlog.Record, eventType string) bool {
	for _, r := range logs {
		if r.EventType == eventType {
			return true
		}
	}

	return false
}

func TestTurnEmptyInputIgnored(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	out, err := svc.HandleTurn(context.Background(), sess, "   ")
	require.NoError(t, err)
	require.Empty(t, out.Messages)
	require.Len(t, sess.Messages, 1)
}

func TestTurnDriftGuard(t *testing.T) {
	ext := &stubExtractor{}
	svc, sess := newTestService(t, ext, &stubReplier{})

	out, err := svc.HandleTurn(context.Background(), sess, "아이폰이랑 같이 쓸 건데요")
	require.NoError(t, err)

	require.Equal(t, []string{msgDrift}, out.Messages)
	// Drifted turns never reach the extractor.
	require.Zero(t, ext.calls)
	require.Equal(t, session.PhaseExplore, sess.Phase)
}

func TestTurnExtractionAddsMemory(t *testing.T) {
	ext := &stubExtractor{memories: []string{"음질을 중요하게 생각하고 있어요."}}
	svc, sess := newTestService(t, ext, &stubReplier{reply: "주로 어떤 용도로 쓰실 예정인가요?"})

	out, err := svc.HandleTurn(context.Background(), sess, "음질이 좋은 걸 원해요")
	require.NoError(t, err)

	require.True(t, sess.Memory.Contains("음질을 중요하게 생각하고 있어요."))
	require.Len(t, out.Notifications, 1)
	assert.Contains(t, out.Notifications[0], "기억해둘게요")
	assert.True(t, hasEvent(sess.Logs, eventlog.EventMemoryAdd))
	require.Equal(t, []string{"주로 어떤 용도로 쓰실 예정인가요?"}, out.Messages)
}

func TestTurnVerbatimDuplicateSkipped(t *testing.T) {
	ext := &stubExtractor{memories: []string{"음질을 중요하게 생각하고 있어요."}}
	svc, sess := newTestService(t, ext, &stubReplier{reply: "주로 어떤 용도로 쓰실 예정인가요?"})

	sess.Memory.Add("음질을 중요하게 생각하고 있어요.", false)
	before := sess.Memory.Len()

	out, err := svc.HandleTurn(context.Background(), sess, "음질이요")
	require.NoError(t, err)

	require.Equal(t, before, sess.Memory.Len())
	require.Empty(t, out.Notifications)
}

func TestTurnAtomicityOnExtractorFailure(t *testing.T) {
	ext := &stubExtractor{err: errors.New("api down")}
	svc, sess := newTestService(t, ext, &stubReplier{})

	messagesBefore := len(sess.Messages)
	logsBefore := len(sess.Logs)
	memoryBefore := sess.Memory.Len()

	_, err := svc.HandleTurn(context.Background(), sess, "음질이 좋은 걸 원해요")
	require.Error(t, err)

	require.Len(t, sess.Messages, messagesBefore)
	require.Len(t, sess.Logs, logsBefore)
	require.Equal(t, memoryBefore, sess.Memory.Len())
	require.Equal(t, session.PhaseExplore, sess.Phase)
}

func TestTurnRecommendRequestWithoutBudget(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	out, err := svc.HandleTurn(context.Background(), sess, "이제 추천해줘")
	require.NoError(t, err)

	require.Equal(t, []string{msgAskBudget}, out.Messages)
	require.Equal(t, classify.TopicBudget, sess.PendingQuestion)
	require.Equal(t, session.PhaseExplore, sess.Phase)
	require.NotEmpty(t, sess.SummaryText)
}

func TestTurnRecommendRequestWithBudget(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)

	out, err := svc.HandleTurn(context.Background(), sess, "이제 추천해줘")
	require.NoError(t, err)

	require.Equal(t, []string{msgSummaryIntro}, out.Messages)
	require.Equal(t, session.PhaseSummary, sess.Phase)
	require.Contains(t, sess.SummaryText, "철수")
	require.True(t, hasEvent(sess.Logs, eventlog.EventStageChange))
}

func TestTurnAutoSummaryAtFiveItems(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("노이즈캔슬링이 필요해요.", false)
	sess.Memory.Add("착용감이 편한 제품을 선호하고 있어요.", false)
	sess.Memory.Add("배터리 지속시간을 중요하게 생각하고 있어요.", false)
	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	require.Equal(t, 5, sess.Memory.Len())

	_, err := svc.HandleTurn(context.Background(), sess, "그 정도면 될 것 같아요")
	require.NoError(t, err)

	require.Equal(t, session.PhaseSummary, sess.Phase)
	require.NotEmpty(t, sess.SummaryText)
}

func TestTurnAutoSummaryAsksBudgetFirst(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("노이즈캔슬링이 필요해요.", false)
	sess.Memory.Add("착용감이 편한 제품을 선호하고 있어요.", false)
	sess.Memory.Add("배터리 지속시간을 중요하게 생각하고 있어요.", false)
	sess.Memory.Add("블랙 계열이 좋아요.", false)
	require.Equal(t, 5, sess.Memory.Len())

	out, err := svc.HandleTurn(context.Background(), sess, "그 정도면 될 것 같아요")
	require.NoError(t, err)

	require.Equal(t, []string{msgAskBudgetEnough}, out.Messages)
	require.Equal(t, classify.TopicBudget, sess.PendingQuestion)
	require.Equal(t, session.PhaseExplore, sess.Phase)
}

func TestTurnPendingNegativeAnswer(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.PendingQuestion = classify.TopicBattery

	out, err := svc.HandleTurn(context.Background(), sess, "딱히 없어요")
	require.NoError(t, err)

	require.Equal(t, []string{msgNextCriterion}, out.Messages)
	require.Equal(t, classify.TopicNone, sess.PendingQuestion)
	require.True(t, sess.TopicAsked(classify.TopicBattery))
}

func TestTurnPendingAffirmativeSeedsMemory(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.PendingQuestion = classify.TopicComfort

	out, err := svc.HandleTurn(context.Background(), sess, "네 맞아요")
	require.NoError(t, err)

	require.Equal(t, []string{msgAcknowledge}, out.Messages)
	require.True(t, sess.Memory.Contains("착용감이 편한 제품을 선호하고 있어요."))
	require.True(t, sess.TopicAsked(classify.TopicComfort))
	require.Equal(t, classify.TopicNone, sess.PendingQuestion)
}

func TestTurnTracksInferredTopic(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{reply: "배터리는 얼마나 중요하세요?"})

	_, err := svc.HandleTurn(context.Background(), sess, "출퇴근용이에요")
	require.NoError(t, err)

	require.Equal(t, classify.TopicBattery, sess.PendingQuestion)
}

func TestTurnSoundQuestionSuppressedAfterFirst(t *testing.T) {
	// The price-first filter would rewrite a sound question, so this
	// session declares the performance style instead.
	svc, sess := newTestServiceWithStyle(t,
		&stubExtractor{}, &stubReplier{reply: "음질은 어느 정도로 중요하세요?"}, session.StylePerformance)

	_, err := svc.HandleTurn(context.Background(), sess, "출퇴근용이에요")
	require.NoError(t, err)
	require.True(t, sess.SoundAsked)
	require.Equal(t, classify.TopicSound, sess.PendingQuestion)

	// Resolve the question, then let the model ask about sound again.
	_, err = svc.HandleTurn(context.Background(), sess, "딱히 없어요")
	require.NoError(t, err)
	require.Equal(t, classify.TopicNone, sess.PendingQuestion)

	_, err = svc.HandleTurn(context.Background(), sess, "음악 감상용이에요")
	require.NoError(t, err)
	require.Equal(t, classify.TopicNone, sess.PendingQuestion)
}

func TestSummaryConfirmByText(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	out, err := svc.HandleTurn(context.Background(), sess, "좋아요")
	require.NoError(t, err)

	require.Equal(t, session.PhaseComparison, sess.Phase)
	require.Len(t, sess.Recommended, 3)
	require.True(t, hasEvent(sess.Logs, eventlog.EventShowCandidates))
	// Intro, per-candidate messages, and closing guidance.
	require.GreaterOrEqual(t, len(out.Messages), 5)
}

func TestSummaryEditByTextRebuildsSummary(t *testing.T) {
	ext := &stubExtractor{memories: []string{"배터리 지속시간을 중요하게 생각하고 있어요."}}
	svc, sess := newTestService(t, ext, &stubReplier{})

	sess.Phase = session.PhaseSummary
	sess.SummaryText = "stale"

	out, err := svc.HandleTurn(context.Background(), sess, "배터리도 중요해요")
	require.NoError(t, err)

	require.Equal(t, []string{msgAcknowledge}, out.Messages)
	require.Contains(t, sess.SummaryText, "배터리")
}

func TestSummaryUnrecognizedTextPointsToEditor(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Phase = session.PhaseSummary

	out, err := svc.HandleTurn(context.Background(), sess, "음 글쎄요")
	require.NoError(t, err)

	require.Equal(t, []string{msgSummaryEdit}, out.Messages)
	require.Equal(t, session.PhaseSummary, sess.Phase)
}

func TestComparisonMemoryEditRecomputes(t *testing.T) {
	ext := &stubExtractor{memories: []string{"예산은 약 10만 원 이내로 생각하고 있어요."}}
	svc, sess := newTestService(t, ext, &stubReplier{reply: "반영해서 다시 골라봤어요."})

	sess.Phase = session.PhaseComparison
	sess.Recommended = nil

	_, err := svc.HandleTurn(context.Background(), sess, "예산은 10만 원 이내로요")
	require.NoError(t, err)

	require.Len(t, sess.Recommended, 3)
	for _, p := range sess.Recommended {
		assert.LessOrEqual(t, p.Price, 200000)
	}
}

func TestComparisonReplyNotFiltered(t *testing.T) {
	// A design-first session asking about sound in comparison keeps the
	// genuine product answer.
	reply := "이 후보는 저음이 단단하고 음질 평가가 좋은 편이에요."
	svc, sess := newTestServiceWithStyle(t,
		&stubExtractor{}, &stubReplier{reply: reply}, session.StyleDesign)

	sess.Phase = session.PhaseComparison

	out, err := svc.HandleTurn(context.Background(), sess, "음질은 어떤 게 제일 좋아요?")
	require.NoError(t, err)
	require.Equal(t, []string{reply}, out.Messages)
}

func TestDetailTurnUsesSelectedProduct(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err := svc.ConfirmRecommendation(sess)
	require.NoError(t, err)

	name := sess.Recommended[0].Name

	out, err := svc.SelectProduct(sess, name)
	require.NoError(t, err)
	require.Equal(t, session.PhaseProductDetail, sess.Phase)
	require.NotNil(t, sess.Selected)
	require.True(t, hasEvent(sess.Logs, eventlog.EventProductDetailEnter))
	require.Contains(t, out.Messages[0], "상세 정보")

	out, err = svc.HandleTurn(context.Background(), sess, "부정적인 리뷰는 어때요?")
	require.NoError(t, err)
	require.Contains(t, out.Messages[0], name)
	require.Equal(t, 1, sess.ProductDetailTurn)
}

func TestDetailWithoutSelectionRecovers(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Phase = session.PhaseProductDetail
	sess.Selected = nil

	out, err := svc.HandleTurn(context.Background(), sess, "이 제품 어때요?")
	require.NoError(t, err)

	require.Equal(t, []string{msgNoSelection}, out.Messages)
	require.Equal(t, session.PhaseComparison, sess.Phase)
}

func TestBackToList(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err := svc.ConfirmRecommendation(sess)
	require.NoError(t, err)

	_, err = svc.SelectProduct(sess, sess.Recommended[0].Name)
	require.NoError(t, err)

	_, err = svc.BackToList(sess)
	require.NoError(t, err)
	require.Equal(t, session.PhaseComparison, sess.Phase)
	require.Nil(t, sess.Selected)
}

func TestFinalDecision(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err := svc.ConfirmRecommendation(sess)
	require.NoError(t, err)

	name := sess.Recommended[0].Name
	_, err = svc.SelectProduct(sess, name)
	require.NoError(t, err)

	out, err := svc.FinalDecision(sess)
	require.NoError(t, err)

	require.Equal(t, session.PhasePurchaseDecision, sess.Phase)
	require.NotNil(t, sess.Final)
	require.Equal(t, name, sess.Final.Name)
	require.True(t, sess.SummaryWritten)
	require.Contains(t, out.Messages[0], name)
	require.True(t, hasEvent(sess.Logs, eventlog.EventFinalDecision))

	// The session is closed; repeating the decision changes nothing.
	repeat, err := svc.FinalDecision(sess)
	require.NoError(t, err)
	require.Empty(t, repeat.Messages)
	require.Equal(t, name, sess.Final.Name)

	turnOut, err := svc.HandleTurn(context.Background(), sess, "고마워요")
	require.NoError(t, err)
	require.Equal(t, []string{msgAlreadyClosed}, turnOut.Messages)
}

func TestFinalDecisionRetriesSummaryWrite(t *testing.T) {
	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	dir := t.TempDir()
	cfg := &config.Config{Data: config.Data{Dir: dir, Condition: "A"}}
	do.ProvideValue(di, cfg)
	do.Provide(di, eventlog.New)

	manager, err := session.NewManager(di)
	require.NoError(t, err)

	svc := &Service{
		events:    do.MustInvoke[*eventlog.Service](di),
		extractor: &stubExtractor{},
		replier:   &stubReplier{},
	}

	sess, err := manager.Create(session.BootstrapInput{
		Nickname: "철수",
		Phone:    "1234",
		Style:    session.StylePrice,
	})
	require.NoError(t, err)

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err = svc.ConfirmRecommendation(sess)
	require.NoError(t, err)
	_, err = svc.SelectProduct(sess, sess.Recommended[0].Name)
	require.NoError(t, err)

	// Point the sink at a regular file so the summary write fails.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.Data.Dir = blocker

	_, err = svc.FinalDecision(sess)
	require.NoError(t, err)
	require.Equal(t, session.PhasePurchaseDecision, sess.Phase)
	require.False(t, sess.SummaryWritten)

	// Once the sink recovers, repeating the decision writes the row.
	cfg.Data.Dir = dir

	out, err := svc.FinalDecision(sess)
	require.NoError(t, err)
	require.True(t, sess.SummaryWritten)
	require.Empty(t, out.Messages)

	data, err := os.ReadFile(filepath.Join(dir, "session_summary.jsonl"))
	require.NoError(t, err)
	require.Contains(t, string(data), sess.ID)
}

func TestFinalDecisionRequiresSelection(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err := svc.ConfirmRecommendation(sess)
	require.NoError(t, err)

	_, err = svc.FinalDecision(sess)
	require.Error(t, err)
	require.Equal(t, session.PhaseComparison, sess.Phase)
}

func TestConfirmRecommendationRequiresSummaryPhase(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	_, err := svc.ConfirmRecommendation(sess)
	require.Error(t, err)
	require.Equal(t, session.PhaseExplore, sess.Phase)
}

func TestSelectProductRejectsUnknownCandidate(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	sess.Memory.Add("예산은 약 15만 원 이내로 생각하고 있어요.", false)
	sess.Phase = session.PhaseSummary

	_, err := svc.ConfirmRecommendation(sess)
	require.NoError(t, err)

	_, err = svc.SelectProduct(sess, "없는 제품")
	require.Error(t, err)
	require.Equal(t, session.PhaseComparison, sess.Phase)
}

func TestUserMemoryEdits(t *testing.T) {
	svc, sess := newTestService(t, &stubExtractor{}, &stubReplier{})

	out, err := svc.AddMemory(sess, "음질을 중요하게 생각하고 있어요.")
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	require.True(t, sess.Memory.Contains("음질을 중요하게 생각하고 있어요."))

	out, err = svc.UpdateMemory(sess, 0, "(가장 중요) 가성비, 가격을 중요하게 생각하는 편이에요.")
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	require.True(t, sess.Memory.Items()[0].Priority)

	out, err = svc.DeleteMemory(sess, 1)
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	require.Equal(t, 1, sess.Memory.Len())

	// Stale indexes are silent no-ops.
	out, err = svc.DeleteMemory(sess, 9)
	require.NoError(t, err)
	require.Empty(t, out.Notifications)

	_, err = svc.AddMemory(sess, "  ")
	require.Error(t, err)

	userAdds := 0
	for _, r := range sess.Logs {
		if r.EventType == eventlog.EventMemoryAdd && r.Source == eventlog.SourceUser {
			userAdds++
		}
	}
	require.Equal(t, 1, userAdds)
}

package dialogue

import (
	"fmt"
	"strings"

	"shoppingagent/app/catalog"
	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/memory"
	"shoppingagent/app/service/session"
)

// ConfirmRecommendation is the summary-phase accept button: it moves
// the session to comparison and announces the candidate list.
func (d *Service) ConfirmRecommendation(s *session.Session) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	base := len(s.Logs)
	out := &TurnOutput{}

	if err := d.changePhase(s, EventSummaryConfirm); err != nil {
		return nil, err
	}
	d.announceCandidates(s, out)
	d.flush(s, base)

	out.Phase = string(s.Phase)

	return out, nil
}

// SelectProduct enters the product_detail phase for one recommended
// candidate and sends its detail card as a chat message.
func (d *Service) SelectProduct(s *session.Session, name string) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	if _, err := nextPhase(s.Phase, EventSelectProduct); err != nil {
		return nil, err
	}

	product, index, err := s.FindRecommended(name)
	if err != nil {
		return nil, err
	}

	base := len(s.Logs)
	out := &TurnOutput{}

	rec := s.NewRecord(eventlog.EventProductDetailEnter, eventlog.SourceUser)
	rec.Value = product.Name
	rec.Index = index
	rec.MemoryCount = s.Memory.Len()
	s.Logs = append(s.Logs, rec)

	s.Selected = &product
	s.ProductDetailTurn = 0
	if err := d.changePhase(s, EventSelectProduct); err != nil {
		return nil, err
	}
	d.say(s, out, productDetailMessage(product))
	d.flush(s, base)

	out.Phase = string(s.Phase)

	return out, nil
}

// BackToList returns from product_detail to the candidate list.
func (d *Service) BackToList(s *session.Session) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	base := len(s.Logs)
	out := &TurnOutput{}

	if err := d.changePhase(s, EventBackToList); err != nil {
		return nil, err
	}
	s.Selected = nil
	d.flush(s, base)

	out.Phase = string(s.Phase)

	return out, nil
}

// FinalDecision closes the session on the currently selected product.
// The aggregate summary row is written at most once; a sink failure
// leaves the flag unset so a repeated click can retry.
func (d *Service) FinalDecision(s *session.Session) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	// Repeating the click on a closed session is a no-op apart from
	// retrying a summary write that previously failed.
	if s.Phase == session.PhasePurchaseDecision {
		d.writeSummaryOnce(s)

		return &TurnOutput{Phase: string(s.Phase)}, nil
	}

	if _, err := nextPhase(s.Phase, EventFinalDecision); err != nil {
		return nil, err
	}

	if s.Selected == nil {
		return nil, fmt.Errorf("no product selected")
	}

	base := len(s.Logs)
	out := &TurnOutput{}

	final := *s.Selected
	s.Final = &final

	rec := s.NewRecord(eventlog.EventFinalDecision, eventlog.SourceUser)
	rec.Value = final.Name
	rec.MemoryCount = s.Memory.Len()
	s.Logs = append(s.Logs, rec)

	if err := d.changePhase(s, EventFinalDecision); err != nil {
		return nil, err
	}

	d.writeSummaryOnce(s)

	d.say(s, out, fmt.Sprintf(
		"좋습니다! **'%s'**(으)로 결정하셨군요! 이제 모든 과정이 끝났습니다. 설문 페이지로 돌아가주세요 :)",
		final.Name))
	d.flush(s, base)

	out.Phase = string(s.Phase)

	return out, nil
}

func (d *Service) writeSummaryOnce(s *session.Session) {
	if s.SummaryWritten {
		return
	}

	sum := eventlog.BuildSummary(s.ID, s.Nickname, s.Phone, s.PrimaryStyle, s.Logs)
	if err := d.events.WriteSummary(sum); err == nil {
		s.SummaryWritten = true
	}
}

// AddMemory inserts a user-authored statement from the memory panel.
func (d *Service) AddMemory(s *session.Session, text string) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty memory text")
	}

	return d.applyUserEdit(s, func(store *memory.Store) memory.Change {
		return store.Add(text, true)
	}), nil
}

// UpdateMemory replaces the statement at index with user-authored text.
func (d *Service) UpdateMemory(s *session.Session, index int, text string) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty memory text")
	}

	return d.applyUserEdit(s, func(store *memory.Store) memory.Change {
		return store.Update(index, text)
	}), nil
}

// DeleteMemory removes the statement at index.
func (d *Service) DeleteMemory(s *session.Session, index int) (*TurnOutput, error) {
	s.Lock()
	defer s.Unlock()

	return d.applyUserEdit(s, func(store *memory.Store) memory.Change {
		return store.Delete(index)
	}), nil
}

func (d *Service) applyUserEdit(s *session.Session, edit func(*memory.Store) memory.Change) *TurnOutput {
	base := len(s.Logs)
	out := &TurnOutput{}

	change := edit(s.Memory)
	d.recordChange(s, out, change, eventlog.SourceUser)
	d.flush(s, base)

	out.Phase = string(s.Phase)

	return out
}

// flush ships the records appended since base to the sink. UI actions
// mutate the session in place, so logs are shipped at the end of each
// action.
func (d *Service) flush(s *session.Session, base int) {
	for _, r := range s.Logs[base:] {
		d.events.Append(r)
	}
}

func productDetailMessage(p catalog.Product) string {
	review := p.ReviewOne
	if review == "" {
		review = "리뷰 요약 정보가 없습니다."
	}

	return fmt.Sprintf(
		"📌 **%s 상세 정보 안내드릴게요!**\n\n"+
			"- **가격:** %s원\n"+
			"- **평점:** ⭐ %.1f (리뷰 %d개)\n"+
			"- **주요 특징(태그):** %s\n"+
			"- **리뷰 한 줄 요약:** %s\n\n"+
			"🔄 현재 추천 상품이 마음에 들지 않으신가요?\n"+
			"**쇼핑 메모리**를 수정하시면 추천 후보가 바로 달라질 수 있어요.\n"+
			"예를 들어 예산, 색상, 노이즈캔슬링, 착용감 같은 기준을 바꿔보셔도 좋습니다.\n\n"+
			"이 제품에 대해 더 궁금한 점이 있으시면 편하게 물어봐 주세요 🙂",
		p.Name, formatPrice(p.Price), p.Rating, p.Reviews, strings.Join(p.Tags, ", "), review)
}

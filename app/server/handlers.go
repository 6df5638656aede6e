package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shoppingagent/app/catalog"
	"shoppingagent/app/service/session"
)

type memoryView struct {
	Text     string `json:"text"`
	Priority bool   `json:"priority"`
}

type sessionView struct {
	ID          string            `json:"id"`
	Nickname    string            `json:"nickname"`
	Phase       string            `json:"phase"`
	SummaryText string            `json:"summary_text,omitempty"`
	Memories    []memoryView      `json:"memories"`
	Recommended []catalog.Product `json:"recommended,omitempty"`
	Selected    *catalog.Product  `json:"selected,omitempty"`
	Final       *catalog.Product  `json:"final,omitempty"`
	Messages    []session.Message `json:"messages"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type memoryRequest struct {
	Text string `json:"text"`
}

type selectRequest struct {
	Name string `json:"name"`
}

func newSessionView(s *session.Session) sessionView {
	s.Lock()
	defer s.Unlock()

	memories := make([]memoryView, 0, s.Memory.Len())
	for _, it := range s.Memory.Items() {
		memories = append(memories, memoryView{Text: it.Text, Priority: it.Priority})
	}

	return sessionView{
		ID:          s.ID,
		Nickname:    s.Nickname,
		Phase:       string(s.Phase),
		SummaryText: s.SummaryText,
		Memories:    memories,
		Recommended: s.Recommended,
		Selected:    s.Selected,
		Final:       s.Final,
		Messages:    s.Messages,
	}
}

func (s *Server) load(c *fiber.Ctx) (*session.Session, error) {
	sess, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return sess, nil
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	return c.JSON(catalog.Products())
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var input session.BootstrapInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess, err := s.sessions.Create(input)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(newSessionView(sess))
}

func (s *Server) getSession(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	return c.JSON(newSessionView(sess))
}

func (s *Server) postMessage(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	var req messageRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := s.dialogue.HandleTurn(c.UserContext(), sess, req.Text)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) addMemory(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	var req memoryRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := s.dialogue.AddMemory(sess, req.Text)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) updateMemory(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid memory index")
	}

	var req memoryRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := s.dialogue.UpdateMemory(sess, index, req.Text)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) deleteMemory(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid memory index")
	}

	out, err := s.dialogue.DeleteMemory(sess, index)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) confirmRecommendation(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	out, err := s.dialogue.ConfirmRecommendation(sess)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) selectProduct(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	var req selectRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := s.dialogue.SelectProduct(sess, req.Name)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) backToList(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	out, err := s.dialogue.BackToList(sess)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(out)
}

func (s *Server) finalDecision(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}

	out, err := s.dialogue.FinalDecision(sess)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(out)
}

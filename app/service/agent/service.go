package agent

import (
	"github.com/samber/do"

	"shoppingagent/app/config"
)

// Service bundles the two generative collaborators behind one DI unit.
type Service struct {
	Extractor *ExtractAgent
	Replier   *ReplyAgent
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		Extractor: NewExtractAgent(cfg.OpenAI.Extract),
		Replier:   NewReplyAgent(cfg.OpenAI.Reply),
	}, nil
}

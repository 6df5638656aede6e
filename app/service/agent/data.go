package agent

import "shoppingagent/app/catalog"

type extractResponse struct {
	Memories []string `json:"memories"`
}

// ReplyInput carries everything the reply agent needs to build the
// stage-specific prompt for an explore/summary/comparison turn.
type ReplyInput struct {
	Nickname   string
	UserText   string
	MemoryText string

	// Explore marks an explore-phase turn. The hard stage rules below
	// only constrain the reply there.
	Explore bool

	// PriceFirst is set when the user picked the cost-first shopping
	// style at bootstrap.
	PriceFirst bool
	// DesignPriority is set when design/style is the declared top
	// criterion, by bootstrap style or by a priority-marked memory.
	DesignPriority bool
	HasBudget      bool
	UsageKnown     bool
}

// DetailInput drives the product_detail prompt for one selected product.
type DetailInput struct {
	Product   catalog.Product
	UserText  string
	Budget    int
	HasBudget bool
	FirstTurn bool
}

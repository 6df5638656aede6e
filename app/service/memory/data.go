package memory

// Item is one normalized shopping criterion. Text is stored with the
// priority marker already stripped; Priority carries it instead.
type Item struct {
	Text     string `json:"text"`
	Priority bool   `json:"is_priority"`
}

// String renders the item the way it is shown to the user and fed to
// prompts, marker included.
func (it Item) String() string {
	if it.Priority {
		return priorityMarker + " " + it.Text
	}

	return it.Text
}

type ChangeKind string

const (
	ChangeNone     ChangeKind = ""
	ChangeAdded    ChangeKind = "added"
	ChangePromoted ChangeKind = "promoted"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
)

// Change describes the outcome of a store mutation so the dialogue layer
// can run side effects and event logging without re-deriving it.
type Change struct {
	Kind     ChangeKind
	Text     string
	OldText  string
	Index    int
	Announce bool
}

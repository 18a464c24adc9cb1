package domain

// Event is one tagged variant observed inside a story step. The set of
// variants is closed: user utterances, executed actions and slot assignments.
type Event interface {
	// Type returns a stable identifier for the variant, used when events are
	// rendered for inspection (CLI, HTTP debug surface).
	Type() string

	isEvent()
}

// Entity is one entity annotation attached to a user utterance.
type Entity struct {
	Name  string `json:"entity" yaml:"entity"`
	Value string `json:"value" yaml:"value"`
}

// UserUttered records one user turn: the raw text (possibly empty when the
// turn was authored as a bare intent) and the resolved intent label.
type UserUttered struct {
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Intent   string   `json:"intent" yaml:"intent"`
	Entities []Entity `json:"entities,omitempty" yaml:"entities,omitempty"`
}

func (UserUttered) Type() string { return "user" }
func (UserUttered) isEvent()     {}

// ActionExecuted records one bot turn. EndToEndText is set when the turn was
// authored as literal utterance text instead of a named response; ActionName
// may be empty in that case.
type ActionExecuted struct {
	ActionName   string `json:"action_name,omitempty" yaml:"action_name,omitempty"`
	EndToEndText string `json:"action_text,omitempty" yaml:"action_text,omitempty"`
}

func (ActionExecuted) Type() string { return "action" }
func (ActionExecuted) isEvent()     {}

// SlotSet records a slot assignment scripted in a story.
type SlotSet struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

func (SlotSet) Type() string { return "slot" }
func (SlotSet) isEvent()     {}

package domain

// Slot describes one slot declaration of the bot.
type Slot struct {
	Type         string `json:"type" yaml:"type" mapstructure:"type"`
	InitialValue any    `json:"initial_value,omitempty" yaml:"initial_value,omitempty" mapstructure:"initial_value"`
}

// Response is a single canned answer variation for a response name.
type Response struct {
	Text  string `json:"text" yaml:"text" mapstructure:"text"`
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// Domain is the declared vocabulary of a bot: everything the designer named
// explicitly, independent of any training example.
type Domain struct {
	Intents   []string              `json:"intents" yaml:"intents" mapstructure:"intents"`
	Entities  []string              `json:"entities" yaml:"entities" mapstructure:"entities"`
	Slots     map[string]Slot       `json:"slots" yaml:"slots" mapstructure:"slots"`
	Responses map[string][]Response `json:"responses" yaml:"responses" mapstructure:"responses"`
	Actions   []string              `json:"actions" yaml:"actions" mapstructure:"actions"`
	Forms     []string              `json:"forms" yaml:"forms" mapstructure:"forms"`
}

// Empty returns the identity value for Domain merges.
func Empty() *Domain {
	return &Domain{}
}

// WithActions builds a minimal domain whose only populated field is the given
// action list. Used to inject derived action names into a merged domain.
func WithActions(names []string) *Domain {
	return &Domain{Actions: names}
}

// IsEmpty reports whether the domain declares nothing at all.
func (d *Domain) IsEmpty() bool {
	return len(d.Intents) == 0 &&
		len(d.Entities) == 0 &&
		len(d.Slots) == 0 &&
		len(d.Responses) == 0 &&
		len(d.Actions) == 0 &&
		len(d.Forms) == 0
}

// Merge returns the union of two domains. Name lists are deduplicated
// preserving first-seen order; for slots and responses declared on both
// sides the receiver's definition wins. Merge is associative and idempotent,
// with Empty as its identity, and leaves both operands untouched.
func (d *Domain) Merge(other *Domain) *Domain {
	if other == nil {
		other = Empty()
	}

	merged := &Domain{
		Intents:  mergeNames(d.Intents, other.Intents),
		Entities: mergeNames(d.Entities, other.Entities),
		Actions:  mergeNames(d.Actions, other.Actions),
		Forms:    mergeNames(d.Forms, other.Forms),
	}

	if len(d.Slots) > 0 || len(other.Slots) > 0 {
		merged.Slots = make(map[string]Slot, len(d.Slots)+len(other.Slots))
		for name, slot := range other.Slots {
			merged.Slots[name] = slot
		}
		for name, slot := range d.Slots {
			merged.Slots[name] = slot
		}
	}

	if len(d.Responses) > 0 || len(other.Responses) > 0 {
		merged.Responses = make(map[string][]Response, len(d.Responses)+len(other.Responses))
		for name, variations := range other.Responses {
			merged.Responses[name] = variations
		}
		for name, variations := range d.Responses {
			merged.Responses[name] = variations
		}
	}

	return merged
}

func mergeNames(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, name := range a {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	for _, name := range b {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	return merged
}

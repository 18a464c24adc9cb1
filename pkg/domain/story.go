package domain

// StoryStep is one scripted dialogue: a named, ordered sequence of events.
// Checkpoints connect steps into a larger graph; they are opaque markers to
// the import pipeline.
type StoryStep struct {
	Name             string   `json:"name" yaml:"name"`
	Events           []Event  `json:"events" yaml:"events"`
	StartCheckpoints []string `json:"start_checkpoints,omitempty" yaml:"start_checkpoints,omitempty"`
	EndCheckpoints   []string `json:"end_checkpoints,omitempty" yaml:"end_checkpoints,omitempty"`
}

// StoryGraph is an ordered collection of story steps.
type StoryGraph struct {
	Steps []StoryStep `json:"steps" yaml:"steps"`
}

// EmptyStoryGraph returns the identity value for StoryGraph merges.
func EmptyStoryGraph() *StoryGraph {
	return &StoryGraph{}
}

// NewStoryGraph builds a graph from the given steps.
func NewStoryGraph(steps ...StoryStep) *StoryGraph {
	return &StoryGraph{Steps: steps}
}

// IsEmpty reports whether the graph contains no steps.
func (g *StoryGraph) IsEmpty() bool {
	return len(g.Steps) == 0
}

// Merge returns a graph holding the steps of both graphs, the receiver's
// first, preserving each step's internal event order. Merge is associative
// with EmptyStoryGraph as its identity.
func (g *StoryGraph) Merge(other *StoryGraph) *StoryGraph {
	if other == nil || len(other.Steps) == 0 {
		return &StoryGraph{Steps: g.Steps}
	}
	steps := make([]StoryStep, 0, len(g.Steps)+len(other.Steps))
	steps = append(steps, g.Steps...)
	steps = append(steps, other.Steps...)
	return &StoryGraph{Steps: steps}
}

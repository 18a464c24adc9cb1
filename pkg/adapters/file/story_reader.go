package file

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// Keys of the YAML story schema.
const (
	keyStories         = "stories"
	keyNLU             = "nlu"
	keyLanguage        = "language"
	keyStoryName       = "story"
	keySteps           = "steps"
	keyIntent          = "intent"
	keyUser            = "user"
	keyEntities        = "entities"
	keyOr              = "or"
	keySlot            = "slot"
	keySlotValue       = "value"
	keyAction          = "action"
	keyBot             = "bot"
	keyCheckpoint      = "checkpoint"
	keyCheckpointSlots = "slots"
	keyMetadata        = "metadata"
)

// storyReader parses the stories of one YAML document. It keeps a set of
// in-progress steps rather than a single one: an `or` block forks every
// in-progress step per alternative, so one authored story can yield several
// linear steps.
type storyReader struct {
	source string
	opts   ports.StoryOptions
	logger *slog.Logger

	current []*domain.StoryStep
	steps   []domain.StoryStep
}

// readStories parses all stories under the document's "stories" key.
func readStories(ctx context.Context, source string, doc map[string]any, opts ports.StoryOptions, logger *slog.Logger) ([]domain.StoryStep, error) {
	reader := &storyReader{source: source, opts: opts, logger: logger}

	items, _ := doc[keyStories].([]any)
	for _, item := range items {
		story, ok := item.(map[string]any)
		if !ok {
			logger.Warn("skipping story block: items under 'stories' must be mappings", "source", source)
			continue
		}
		if err := reader.parseStory(ctx, story); err != nil {
			return nil, err
		}
	}
	return reader.steps, nil
}

func (r *storyReader) parseStory(ctx context.Context, story map[string]any) error {
	name := stringValue(story, keyStoryName)
	if name == "" {
		r.logger.Warn("story has no name", "source", r.source)
	}

	steps, _ := story[keySteps].([]any)
	if len(steps) == 0 {
		r.logger.Warn("skipping story without steps", "source", r.source, "story", name)
		return nil
	}

	r.current = []*domain.StoryStep{{Name: name}}
	for _, step := range steps {
		stepMap, ok := step.(map[string]any)
		if !ok {
			r.logger.Warn("skipping step: steps must be mappings", "source", r.source, "story", name)
			continue
		}
		if err := r.parseStep(ctx, stepMap); err != nil {
			return err
		}
	}

	for _, step := range r.current {
		r.steps = append(r.steps, *step)
	}
	r.current = nil
	return nil
}

func (r *storyReader) parseStep(ctx context.Context, step map[string]any) error {
	switch {
	case hasKey(step, keyIntent):
		r.addEvent(r.userUtteranceFromIntent(step))
	case hasKey(step, keyUser):
		return r.parseUserMessage(ctx, step)
	case hasKey(step, keyOr):
		return r.parseOr(step)
	case hasKey(step, keySlot):
		r.addEvent(domain.SlotSet{Name: stringValue(step, keySlot), Value: step[keySlotValue]})
	case hasKey(step, keyAction), hasKey(step, keyBot):
		r.parseAction(step)
	case hasKey(step, keyCheckpoint):
		r.parseCheckpoint(step)
	case hasKey(step, keyMetadata):
		// Metadata is free-form designer annotation, invisible to training.
	default:
		r.logger.Warn("skipping step with unknown keys", "source", r.source)
	}
	return nil
}

// userUtteranceFromIntent builds the event for a `- intent:` step. The
// leading slash of the intent shorthand is tolerated.
func (r *storyReader) userUtteranceFromIntent(step map[string]any) domain.Event {
	intent := strings.TrimPrefix(strings.TrimSpace(stringValue(step, keyIntent)), "/")
	return domain.UserUttered{Intent: intent, Entities: parseEntities(step[keyEntities])}
}

// parseUserMessage handles a `- user:` free-text step. These are end-to-end
// annotations: they are only read when UseE2E is set and never in
// dialogue-only mode.
func (r *storyReader) parseUserMessage(ctx context.Context, step map[string]any) error {
	if !r.opts.UseE2E || r.opts.DialogueOnly {
		return nil
	}
	text := stringValue(step, keyUser)
	utterance, err := r.opts.InterpreterOrDefault().Parse(ctx, text)
	if err != nil {
		return err
	}
	utterance.Text = text
	r.addEvent(utterance)
	return nil
}

// parseOr forks every in-progress step once per alternative.
func (r *storyReader) parseOr(step map[string]any) error {
	alternatives, _ := step[keyOr].([]any)

	var events []domain.Event
	for _, alternative := range alternatives {
		alt, ok := alternative.(map[string]any)
		if !ok || !hasKey(alt, keyIntent) {
			r.logger.Warn("'or' alternatives must be intent steps", "source", r.source)
			continue
		}
		events = append(events, r.userUtteranceFromIntent(alt))
	}

	switch len(events) {
	case 0:
	case 1:
		r.addEvent(events[0])
	default:
		forked := make([]*domain.StoryStep, 0, len(r.current)*len(events))
		for _, step := range r.current {
			for _, event := range events {
				clone := cloneStep(step)
				clone.Events = append(clone.Events, event)
				forked = append(forked, clone)
			}
		}
		r.current = forked
	}
	return nil
}

// parseAction handles `- action:` and `- bot:` steps, including the combined
// form where a named action carries authored end-to-end text. The text is
// dropped unless end-to-end parsing is on.
func (r *storyReader) parseAction(step map[string]any) {
	name := stringValue(step, keyAction)
	text := ""
	if r.opts.UseE2E && !r.opts.DialogueOnly {
		text = stringValue(step, keyBot)
	}
	if name == "" && text == "" {
		if !hasKey(step, keyBot) {
			r.logger.Warn("skipping action step without a name", "source", r.source)
		}
		return
	}
	r.addEvent(domain.ActionExecuted{ActionName: name, EndToEndText: text})
}

// parseCheckpoint records a checkpoint marker: a start checkpoint when no
// events were seen yet, an end checkpoint otherwise.
func (r *storyReader) parseCheckpoint(step map[string]any) {
	name := stringValue(step, keyCheckpoint)
	if name == "" {
		r.logger.Warn("skipping checkpoint without a name", "source", r.source)
		return
	}
	if hasKey(step, keyCheckpointSlots) {
		r.logger.Debug("checkpoint slot conditions are ignored", "source", r.source, "checkpoint", name)
	}
	for _, current := range r.current {
		if len(current.Events) == 0 {
			current.StartCheckpoints = append(current.StartCheckpoints, name)
		} else {
			current.EndCheckpoints = append(current.EndCheckpoints, name)
		}
	}
}

func (r *storyReader) addEvent(event domain.Event) {
	for _, step := range r.current {
		step.Events = append(step.Events, event)
	}
}

func cloneStep(step *domain.StoryStep) *domain.StoryStep {
	return &domain.StoryStep{
		Name:             step.Name,
		Events:           slices.Clone(step.Events),
		StartCheckpoints: slices.Clone(step.StartCheckpoints),
		EndCheckpoints:   slices.Clone(step.EndCheckpoints),
	}
}

// parseEntities accepts both annotation shapes: a bare entity name, or a
// single-pair mapping of entity name to value.
func parseEntities(raw any) []domain.Entity {
	items, _ := raw.([]any)
	var entities []domain.Entity
	for _, item := range items {
		switch v := item.(type) {
		case string:
			entities = append(entities, domain.Entity{Name: v})
		case map[string]any:
			for name, value := range v {
				text, _ := value.(string)
				entities = append(entities, domain.Entity{Name: name, Value: text})
			}
		}
	}
	return entities
}

func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

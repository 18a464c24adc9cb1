package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aryaman4/rasa/pkg/domain"
)

// Interpreter resolves the free text of an end-to-end user turn into a
// user-utterance event with an intent label and entity annotations.
type Interpreter interface {
	Parse(ctx context.Context, text string) (domain.UserUttered, error)
}

// RegexInterpreter is the default interpreter. It understands the intent
// shorthand `/intent` and `/intent{"entity": "value"}`; any other text is
// passed through unresolved, with an empty intent label.
type RegexInterpreter struct{}

// Parse implements Interpreter.
func (RegexInterpreter) Parse(_ context.Context, text string) (domain.UserUttered, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return domain.UserUttered{Text: text}, nil
	}

	body := strings.TrimPrefix(trimmed, "/")
	intent := body
	var entities []domain.Entity

	if start := strings.Index(body, "{"); start >= 0 {
		intent = strings.TrimSpace(body[:start])
		parsed, err := parseEntityShorthand(body[start:])
		if err != nil {
			return domain.UserUttered{}, fmt.Errorf("parsing entities of %q: %w", text, err)
		}
		entities = parsed
	}

	return domain.UserUttered{Text: text, Intent: intent, Entities: entities}, nil
}

func parseEntityShorthand(raw string) ([]domain.Entity, error) {
	// Values may be any JSON scalar, not just strings.
	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}

	entities := make([]domain.Entity, 0, len(values))
	for name, value := range values {
		entities = append(entities, domain.Entity{Name: name, Value: stringify(value)})
	}
	// Map iteration order is random; keep the result stable.
	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })
	return entities, nil
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

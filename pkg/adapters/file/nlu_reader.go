package file

import (
	"log/slog"
	"strings"

	"github.com/aryaman4/rasa/pkg/domain"
)

const (
	keySynonym  = "synonym"
	keyRegex    = "regex"
	keyLookup   = "lookup"
	keyExamples = "examples"
)

// readNLU parses the intent examples under the document's "nlu" key. Synonym,
// regex and lookup blocks belong to entity extraction and are skipped here.
func readNLU(source string, doc map[string]any, logger *slog.Logger) ([]*domain.Message, error) {
	items, _ := doc[keyNLU].([]any)

	var messages []*domain.Message
	for _, item := range items {
		block, ok := item.(map[string]any)
		if !ok {
			logger.Warn("skipping NLU block: items under 'nlu' must be mappings", "source", source)
			continue
		}

		switch {
		case hasKey(block, keyIntent):
			intent := stringValue(block, keyIntent)
			for _, example := range parseExamples(block[keyExamples]) {
				messages = append(messages, domain.NewUserMessage(example, intent))
			}
		case hasKey(block, keySynonym), hasKey(block, keyRegex), hasKey(block, keyLookup):
			logger.Debug("skipping entity-extraction block", "source", source)
		default:
			logger.Warn("skipping NLU block with unknown keys", "source", source)
		}
	}
	return messages, nil
}

// parseExamples accepts both example shapes: a literal block of "- example"
// lines, or a YAML list of strings.
func parseExamples(raw any) []string {
	var examples []string
	switch v := raw.(type) {
	case string:
		for _, line := range strings.Split(v, "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
			if line != "" {
				examples = append(examples, line)
			}
		}
	case []any:
		for _, item := range v {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				examples = append(examples, strings.TrimSpace(text))
			}
		}
	}
	return examples
}

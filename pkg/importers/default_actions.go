package importers

import (
	"github.com/aryaman4/rasa/pkg/domain"
)

// DefaultActionData synthesizes one training example per built-in action:
// empty text, the action name as the sole attribute. This guarantees the
// action classifier sees every built-in at least once, even when no story
// exercises it with end-to-end text.
func DefaultActionData() *domain.TrainingData {
	names := domain.DefaultActionNames()
	messages := make([]*domain.Message, 0, len(names))
	for _, name := range names {
		messages = append(messages, domain.NewActionMessage(name, ""))
	}
	return domain.NewTrainingData(messages...)
}

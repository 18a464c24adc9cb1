package domain

// Attribute keys carried in Message.Data. ActionText deliberately duplicates
// the message text for bot turns so downstream featurization can address
// "what the bot said" independently of general free text.
const (
	AttributeIntent     = "intent"
	AttributeActionName = "action_name"
	AttributeActionText = "action_text"
)

// Message is one NLU training example: free text plus named attributes.
type Message struct {
	Text string         `json:"text" yaml:"text"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// NewUserMessage builds a user-turn example carrying an intent label.
func NewUserMessage(text, intent string) *Message {
	return &Message{
		Text: text,
		Data: map[string]any{AttributeIntent: intent},
	}
}

// NewActionMessage builds a bot-turn example carrying an action name. When
// end-to-end text is present it becomes both the message text and the
// action-text attribute.
func NewActionMessage(actionName, endToEndText string) *Message {
	data := map[string]any{AttributeActionName: actionName}
	if endToEndText != "" {
		data[AttributeActionText] = endToEndText
	}
	return &Message{Text: endToEndText, Data: data}
}

// Intent returns the intent attribute, or "" when the message is not a user turn.
func (m *Message) Intent() string {
	intent, _ := m.Data[AttributeIntent].(string)
	return intent
}

// ActionName returns the action-name attribute, or "" when the message is not
// a bot turn.
func (m *Message) ActionName() string {
	name, _ := m.Data[AttributeActionName].(string)
	return name
}

// ActionText returns the action-text attribute, or "" when absent.
func (m *Message) ActionText() string {
	text, _ := m.Data[AttributeActionText].(string)
	return text
}

// TrainingData is an unordered collection of NLU training examples.
type TrainingData struct {
	Examples []*Message `json:"examples" yaml:"examples"`
}

// NewTrainingData builds a collection from the given examples. With no
// arguments it returns the identity value for merges.
func NewTrainingData(examples ...*Message) *TrainingData {
	return &TrainingData{Examples: examples}
}

// IsEmpty reports whether the collection holds no examples.
func (t *TrainingData) IsEmpty() bool {
	return len(t.Examples) == 0
}

// Merge concatenates both example collections, the receiver's first.
// Duplicates are kept; deduplication is owned by downstream processing.
// Merge is associative with NewTrainingData() as its identity.
func (t *TrainingData) Merge(other *TrainingData) *TrainingData {
	if other == nil || len(other.Examples) == 0 {
		return &TrainingData{Examples: t.Examples}
	}
	examples := make([]*Message, 0, len(t.Examples)+len(other.Examples))
	examples = append(examples, t.Examples...)
	examples = append(examples, other.Examples...)
	return &TrainingData{Examples: examples}
}

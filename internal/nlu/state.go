package nlu

// historyDepth bounds the conversation history ring; oldest intents fall off
// first.
const historyDepth = 5

// ConversationState is the short-lived memory of one conversation. It is
// owned by exactly one Parser and mutated only after a successful
// classification.
type ConversationState struct {
	LastIntent   string
	LastEntities map[string]any
	TurnCount    int
	PendingSlot  string
	History      []string
}

func (s *ConversationState) remember(intent string, entities map[string]any) {
	s.LastIntent = intent
	s.LastEntities = entities
	s.TurnCount++
	s.History = append(s.History, intent)
	if len(s.History) > historyDepth {
		s.History = s.History[len(s.History)-historyDepth:]
	}
}

// Reset clears the state for a fresh conversation session.
func (s *ConversationState) Reset() {
	*s = ConversationState{}
}

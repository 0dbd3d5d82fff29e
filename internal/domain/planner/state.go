package planner

// State is the dialogue position of one conversation.
type State string

const (
	StateInitial               State = "initial"
	StateAwaitingClarification State = "awaiting_clarification"
	StateAwaitingConfirmation  State = "awaiting_confirmation"
	StateGenerating            State = "generating"
	StateDelivered             State = "delivered"
	StateListAnswered          State = "list_answered"
)

// validTransitions is the authoritative transition table. Generating is a
// transient state: a turn enters and leaves it within one request.
var validTransitions = map[State][]State{
	StateInitial:               {StateAwaitingClarification, StateAwaitingConfirmation, StateListAnswered},
	StateAwaitingClarification: {StateAwaitingClarification, StateAwaitingConfirmation, StateListAnswered},
	StateAwaitingConfirmation:  {StateAwaitingClarification, StateAwaitingConfirmation, StateGenerating, StateListAnswered},
	StateGenerating:            {StateDelivered, StateAwaitingConfirmation},
	StateDelivered:             {StateAwaitingClarification, StateAwaitingConfirmation, StateGenerating, StateListAnswered},
	StateListAnswered:          {StateAwaitingClarification, StateAwaitingConfirmation, StateListAnswered},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

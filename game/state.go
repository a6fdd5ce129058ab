package game

import "sync"

// State is one phase of a playthrough.
type State uint8

const (
	StateMenu State = iota
	StateGenerating
	StatePlaying
	StateWon
)

// stateNames maps each state to its display name.
var stateNames = map[State]string{
	StateMenu:       "Menu",
	StateGenerating: "Generating",
	StatePlaying:    "Playing",
	StateWon:        "Won",
}

// String returns the state's display name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// validTransitions lists the only state changes a session may make. The
// generation pipeline, world builds and teardowns all hang off these edges;
// nothing else creates or destroys a maze, world or player.
//
//	Menu -> Generating       seed consumed, pipeline runs
//	Generating -> Playing    pipeline succeeded
//	Generating -> Menu       pipeline rejected the request
//	Playing -> Won           goal sensor contact
//	Playing -> Generating    reset mid-game
//	Won -> Generating        restart
var validTransitions = map[State][]State{
	StateMenu:       {StateGenerating},
	StateGenerating: {StatePlaying, StateMenu},
	StatePlaying:    {StateWon, StateGenerating},
	StateWon:        {StateGenerating},
}

// StateMachine is the single authoritative game state for one session.
// Out-of-order transition requests are ignored, not errors.
type StateMachine struct {
	current State
	mu      sync.RWMutex
}

// NewStateMachine creates a state machine in the menu state.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateMenu}
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// TransitionTo moves to the requested state if the edge is valid and reports
// whether the transition happened.
func (sm *StateMachine) TransitionTo(next State) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, allowed := range validTransitions[sm.current] {
		if allowed == next {
			sm.current = next
			return true
		}
	}
	return false
}

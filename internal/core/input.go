package core

import "strings"

// Intent represents a semantic game action, abstracted from physical key presses.
// Intents are bit flags so a whole frame of input fits in one word.
type Intent uint16

const (
	IntentEscape    Intent = 1 << iota // Esc - pause, leave menu
	IntentUp                           // Up arrow - level up in menu, rotate in block game
	IntentDown                         // Down arrow - soft drop, level down in menu
	IntentLeft                         // Left arrow
	IntentRight                        // Right arrow
	IntentPrimary                      // Z - rotate left / turn left
	IntentSecondary                    // X - rotate right / turn right
	IntentDrop                         // Space, Enter - hard drop, start
	IntentNext                         // Tab - next game
	IntentPrev                         // Shift+Tab - previous game

	IntentNone Intent = 0
)

// Directional intents are level-triggered for movement and reset autorepeat.
const IntentHorizontal = IntentLeft | IntentRight

// AllIntents lists every intent in declaration order.
var AllIntents = []Intent{
	IntentEscape, IntentUp, IntentDown, IntentLeft, IntentRight,
	IntentPrimary, IntentSecondary, IntentDrop, IntentNext, IntentPrev,
}

var intentNames = map[Intent]string{
	IntentEscape:    "escape",
	IntentUp:        "up",
	IntentDown:      "down",
	IntentLeft:      "left",
	IntentRight:     "right",
	IntentPrimary:   "primary",
	IntentSecondary: "secondary",
	IntentDrop:      "drop",
	IntentNext:      "next",
	IntentPrev:      "prev",
}

// String returns the config name of a single intent, or a "|"-joined list
// for a combination.
func (i Intent) String() string {
	if i == IntentNone {
		return "none"
	}
	if name, ok := intentNames[i]; ok {
		return name
	}
	var parts []string
	for _, one := range AllIntents {
		if i&one != 0 {
			parts = append(parts, intentNames[one])
		}
	}
	return strings.Join(parts, "|")
}

// ParseIntent looks up an intent by its config name.
func ParseIntent(name string) (Intent, bool) {
	for i, n := range intentNames {
		if n == name {
			return i, true
		}
	}
	return IntentNone, false
}

// InputState is the input buffer shared by a driver and one game.
//
// Pressed flags are edge-triggered: set by the driver on key down and
// consumed by the game when acted on. Whatever the game leaves unconsumed
// is dropped by EndFrame. Held flags are level-triggered: they stay set
// until the driver reports the key release.
type InputState struct {
	pressed Intent
	held    Intent

	// Autorepeat counts frames a horizontal direction has been acted on
	// since it was last pressed.
	Autorepeat int
}

// Press records a key-down for i.
// A repeated key-down for an intent that is still held does not restart
// autorepeat.
func (s *InputState) Press(i Intent) {
	if i&IntentHorizontal&^s.held != 0 {
		s.Autorepeat = 0
	}
	s.pressed |= i
	s.held |= i
}

// Release records a key-up for i.
func (s *InputState) Release(i Intent) {
	s.held &^= i
	if i&IntentHorizontal != 0 {
		s.Autorepeat = 0
	}
}

// Take reports whether i was pressed this frame and consumes the press.
func (s *InputState) Take(i Intent) bool {
	if s.pressed&i == 0 {
		return false
	}
	s.pressed &^= i
	return true
}

// Pressed reports whether i was pressed this frame without consuming it.
func (s *InputState) Pressed(i Intent) bool {
	return s.pressed&i != 0
}

// Held reports whether any of i is currently held down.
func (s *InputState) Held(i Intent) bool {
	return s.held&i != 0
}

// Active reports whether i was pressed this frame or is held.
func (s *InputState) Active(i Intent) bool {
	return (s.pressed|s.held)&i != 0
}

// EndFrame drops every press the game did not consume.
func (s *InputState) EndFrame() {
	s.pressed = IntentNone
}

// Reset clears everything, e.g. when a driver switches games.
func (s *InputState) Reset() {
	*s = InputState{}
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to intents.
//
// Terminals report key-down and auto-repeat but never key-up, so a held
// intent is released once no key bound to it has arrived for the release
// timeout. This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Intent
	release  time.Duration
	lastSeen map[core.Intent]time.Time
}

// NewKeyMapper creates a mapper over key name -> intent bindings.
func NewKeyMapper(bindings map[string]core.Intent, release time.Duration) *KeyMapper {
	return &KeyMapper{
		bindings: bindings,
		release:  release,
		lastSeen: make(map[core.Intent]time.Time),
	}
}

// KeyName returns the config name of a key message.
func KeyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}

// Rebind swaps the bindings. Intents held under the old bindings stay held
// until they time out.
func (km *KeyMapper) Rebind(bindings map[string]core.Intent, release time.Duration) {
	km.bindings = bindings
	km.release = release
}

// Lookup returns the intents bound to a key.
func (km *KeyMapper) Lookup(key string) core.Intent {
	return km.bindings[key]
}

// Press records a key-down (or repeat) at now. It returns false when the
// key is not bound.
func (km *KeyMapper) Press(key string, now time.Time, in *core.InputState) bool {
	intents := km.bindings[key]
	if intents == core.IntentNone {
		return false
	}
	for _, i := range core.AllIntents {
		if intents&i == 0 {
			continue
		}
		in.Press(i)
		km.lastSeen[i] = now
	}
	return true
}

// Expire releases intents whose keys went quiet for the release timeout.
func (km *KeyMapper) Expire(now time.Time, in *core.InputState) {
	for i, seen := range km.lastSeen {
		if now.Sub(seen) >= km.release {
			in.Release(i)
			delete(km.lastSeen, i)
		}
	}
}

// ReleaseAll releases every tracked intent and forgets when they were last
// seen. The model calls it when the game on screen changes.
func (km *KeyMapper) ReleaseAll(in *core.InputState) {
	for i := range km.lastSeen {
		in.Release(i)
		delete(km.lastSeen, i)
	}
}

package window

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// aliases maps terminal-style key names onto ebiten's.
var aliases = map[string]string{
	"up":    "arrowup",
	"down":  "arrowdown",
	"left":  "arrowleft",
	"right": "arrowright",
	"esc":   "escape",
}

var keyNames = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := strings.ToLower(k.String())
		if _, ok := m[name]; !ok {
			m[name] = k
		}
		if digit, ok := strings.CutPrefix(name, "digit"); ok {
			m[digit] = k
		}
	}
	return m
}()

// binding is one physical key bound to intents.
type binding struct {
	key    ebiten.Key
	shift  bool // shift must be held; plain bindings require it released
	intent core.Intent
}

// parseKey resolves a config key name such as "z", "space" or "shift+tab".
func parseKey(name string) (ebiten.Key, bool, error) {
	name = strings.ToLower(name)
	shift := false
	if rest, ok := strings.CutPrefix(name, "shift+"); ok {
		shift, name = true, rest
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	k, ok := keyNames[name]
	if !ok {
		return 0, false, fmt.Errorf("window: unknown key %q", name)
	}
	return k, shift, nil
}

// parseBindings converts key name -> intent bindings to physical keys.
// Names ebiten cannot express, such as ctrl chords, are returned as
// skipped.
func parseBindings(m map[string]core.Intent) (bs []binding, skipped []string) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		k, shift, err := parseKey(name)
		if err != nil {
			skipped = append(skipped, name)
			continue
		}
		bs = append(bs, binding{key: k, shift: shift, intent: m[name]})
	}
	return bs, skipped
}

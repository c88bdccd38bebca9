// Package platform holds small OS-dependent helpers for keybinding lookup
// and display.
package platform

import (
	"runtime"
	"sort"
	"strings"
)

// IsMac reports whether we run on macOS (darwin).
func IsMac() bool {
	return runtime.GOOS == "darwin"
}

// ReplacePrimaryModifier swaps Ctrl with Cmd in the provided text when on macOS.
func ReplacePrimaryModifier(text string) string {
	if !IsMac() || text == "" {
		return text
	}
	replacer := strings.NewReplacer(
		"Ctrl+", "Cmd+",
		"ctrl+", "cmd+",
		"CTRL+", "CMD+",
	)
	return replacer.Replace(text)
}

var modifierOrder = map[string]int{
	"ctrl":  0,
	"super": 1,
	"alt":   2,
	"shift": 3,
}

// CanonicalKey normalizes key descriptions so different aliases resolve
// consistently: modifiers are lower-cased, deduplicated and sorted in a
// stable order, and cmd maps to ctrl so mac bindings work on terminals which
// don't forward the command key.
func CanonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	var mods []string
	var main string
	for i, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if i == len(parts)-1 {
			main = p
			break
		}
		switch p {
		case "cmd", "command", "⌘", "control":
			p = "ctrl"
		case "option", "opt", "⌥":
			p = "alt"
		case "meta", "win", "windows":
			p = "super"
		}
		mods = append(mods, p)
	}
	mods = uniqueStrings(mods)
	sort.SliceStable(mods, func(i, j int) bool {
		oi, oki := modifierOrder[mods[i]]
		oj, okj := modifierOrder[mods[j]]
		if !oki {
			oi = len(modifierOrder)
		}
		if !okj {
			oj = len(modifierOrder)
		}
		if oi == oj {
			return mods[i] < mods[j]
		}
		return oi < oj
	})

	switch main {
	case "escape":
		main = "esc"
	case "return":
		main = "enter"
	case "space":
		main = " "
	}
	if main == "" {
		return strings.Join(mods, "+")
	}
	return strings.Join(append(mods, main), "+")
}

// DisplayKey formats a key binding for UI hints with platform-friendly
// modifier names.
func DisplayKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	display := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.ToLower(strings.TrimSpace(part))
		switch p {
		case "":
			continue
		case "ctrl", "control":
			if IsMac() {
				display = append(display, "Cmd")
			} else {
				display = append(display, "Ctrl")
			}
		case "alt", "option", "opt":
			if IsMac() {
				display = append(display, "Option")
			} else {
				display = append(display, "Alt")
			}
		case "shift":
			display = append(display, "Shift")
		case "esc", "escape":
			display = append(display, "Esc")
		case "enter", "return":
			display = append(display, "Enter")
		default:
			if len(p) == 1 {
				display = append(display, strings.ToUpper(p))
			} else {
				display = append(display, strings.ToUpper(p[:1])+p[1:])
			}
		}
	}
	return strings.Join(display, "+")
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

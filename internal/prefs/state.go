// Package prefs holds the dashboard's per-user view state: the colour theme
// and the active section. Transitions are pure; only the theme is persisted.
package prefs

import "strings"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

type Section string

const (
	Home       Section = "home"
	Analytics  Section = "analytics"
	Prediction Section = "prediction"
)

// State is what the dashboard shell renders from.
type State struct {
	Theme   Theme   `json:"theme"`
	Section Section `json:"section"`
}

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggle flips light and dark. Anything else toggles to dark, as light is
// the implied starting point.
func Toggle(t Theme) Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Navigate returns the section to show for a requested name. Unknown names
// land on home.
func Navigate(name string) Section {
	switch s := Section(strings.ToLower(strings.TrimSpace(name))); s {
	case Home, Analytics, Prediction:
		return s
	}
	return Home
}

// Initial picks the starting theme: the stored value, else the configured
// fallback, else light.
func Initial(stored, fallback string) Theme {
	if t, ok := ParseTheme(stored); ok {
		return t
	}
	if t, ok := ParseTheme(fallback); ok {
		return t
	}
	return Light
}

// WithTheme and WithSection return modified copies.
func (s State) WithTheme(t Theme) State {
	s.Theme = t
	return s
}

func (s State) WithSection(sec Section) State {
	s.Section = sec
	return s
}

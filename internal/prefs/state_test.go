package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Toggle(Light))
	assert.Equal(t, Light, Toggle(Dark))
	assert.Equal(t, Light, Toggle(Toggle(Light)), "toggle twice is identity")
	assert.Equal(t, Dark, Toggle(""))
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		in   string
		want Section
	}{
		{"home", Home},
		{"analytics", Analytics},
		{"prediction", Prediction},
		{" Prediction ", Prediction},
		{"settings", Home},
		{"", Home},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.in))
		})
	}
}

func TestInitial(t *testing.T) {
	assert.Equal(t, Dark, Initial("dark", "light"), "stored wins")
	assert.Equal(t, Dark, Initial("", "dark"), "fallback when nothing stored")
	assert.Equal(t, Light, Initial("purple", "sepia"))
	assert.Equal(t, Light, Initial("", ""))
}

func TestStateCopies(t *testing.T) {
	s := State{Theme: Light, Section: Home}
	next := s.WithTheme(Dark).WithSection(Analytics)

	assert.Equal(t, State{Theme: Light, Section: Home}, s)
	assert.Equal(t, State{Theme: Dark, Section: Analytics}, next)
}

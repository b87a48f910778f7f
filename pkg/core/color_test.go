package core

import (
	"image/color"
	"testing"
)

func TestColor_IsOverwhite(t *testing.T) {
	tests := []struct {
		name     string
		c        Color
		expected bool
	}{
		{"exactly white", RGB(1, 1, 1), true},
		{"brighter than white", RGB(1.5, 2, 1), true},
		{"one channel short", RGB(1, 0.99, 1), false},
		{"black", Black, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsOverwhite(); got != tt.expected {
				t.Errorf("IsOverwhite(%v) = %t, expected %t", tt.c, got, tt.expected)
			}
		})
	}
}

func TestColor_Lerp(t *testing.T) {
	a := RGBA(0, 0.5, 1, 0)
	b := RGBA(1, 0.5, 0, 1)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp at 0 should return the first color exactly, got %v", got)
	}
	if got := a.Lerp(b, 0.25); !got.Equals(RGBA(0.25, 0.5, 0.75, 0.25)) {
		t.Errorf("Unexpected lerp result %v", got)
	}
}

func TestColor_RGBA8RoundTrip(t *testing.T) {
	c := RGB(2, -1, 0.5).RGBA8()
	expected := color.RGBA{R: 255, G: 0, B: 128, A: 255}
	if c != expected {
		t.Errorf("Expected %v, got %v", expected, c)
	}

	back := FromColor(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	if !back.Equals(RGB(1, 0, 0)) {
		t.Errorf("Expected opaque red, got %v", back)
	}
}

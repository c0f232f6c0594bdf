package core

import "testing"

func TestBoxSpans(t *testing.T) {
	b := NewBox(10, 20, 110, 70)

	if b.Width() != 100 {
		t.Errorf("Width() = %f, expected 100", b.Width())
	}
	if b.Height() != 50 {
		t.Errorf("Height() = %f, expected 50", b.Height())
	}

	cx, cy := b.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center() = (%f, %f), expected (60, 45)", cx, cy)
	}
}

func TestBoxValid(t *testing.T) {
	tests := []struct {
		name     string
		box      Box
		expected bool
	}{
		{"regular box", NewBox(0, 0, 800, 800), true},
		{"zero width", NewBox(10, 0, 10, 800), false},
		{"zero height", NewBox(0, 10, 800, 10), false},
		{"inverted x", NewBox(50, 0, 40, 800), false},
		{"inverted y", NewBox(0, 50, 800, 40), false},
		{"tiny box", NewBox(0, 0, 0.5, 0.5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.box.Valid(); got != tc.expected {
				t.Errorf("Valid() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxInset(t *testing.T) {
	b := NewBox(0, 0, 100, 60).Inset(5)
	expected := NewBox(5, 5, 95, 55)
	if b != expected {
		t.Errorf("Inset(5) = %v, expected %v", b, expected)
	}

	grown := NewBox(0, 0, 100, 60).Inset(-5)
	if grown != NewBox(-5, -5, 105, 65) {
		t.Errorf("Inset(-5) = %v, expected (-5,-5)-(105,65)", grown)
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(10, 10, 30, 25)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner (inclusive)", 30, 25, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%f, %f) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestBoxContainsBox(t *testing.T) {
	parent := NewBox(0, 0, 800, 800)

	if !parent.ContainsBox(NewBox(5, 5, 795, 795)) {
		t.Error("inset box should be contained")
	}
	if !parent.ContainsBox(parent) {
		t.Error("box should contain itself")
	}
	if parent.ContainsBox(NewBox(-1, 5, 100, 100)) {
		t.Error("box crossing the left edge should not be contained")
	}
	if parent.ContainsBox(NewBox(5, 5, 100, 801)) {
		t.Error("box crossing the bottom edge should not be contained")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

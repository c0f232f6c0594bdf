package nest

import (
	"testing"

	"github.com/vovakirdan/nestlines/internal/core"
)

func TestBounceAtMax(t *testing.T) {
	l := Line{Pos: 795, Dir: Forward, Speed: 1}
	l.move()
	l.bounce(0, 800)

	if l.Pos != 795 {
		t.Errorf("Pos = %f, expected 795", l.Pos)
	}
	if l.Dir != Backward {
		t.Errorf("Dir = %d, expected Backward", l.Dir)
	}
}

func TestBounceAtMin(t *testing.T) {
	l := Line{Pos: 6, Dir: Backward, Speed: 3}
	l.move()
	l.bounce(0, 800)

	if l.Pos != 5 {
		t.Errorf("Pos = %f, expected 5", l.Pos)
	}
	if l.Dir != Forward {
		t.Errorf("Dir = %d, expected Forward", l.Dir)
	}
}

func TestBounceInside(t *testing.T) {
	l := Line{Pos: 400, Dir: Backward, Speed: 2}
	l.move()
	l.bounce(0, 800)

	if l.Pos != 398 || l.Dir != Backward {
		t.Errorf("line = %+v, expected Pos 398 moving Backward", l)
	}
}

func TestPairCrossingAllowed(t *testing.T) {
	p := Pair{
		Low:  Line{Pos: 100, Dir: Forward, Speed: 5},
		High: Line{Pos: 101, Dir: Backward, Speed: 5},
	}
	p.advance(0, 800)

	if p.Low.Pos != 105 || p.High.Pos != 96 {
		t.Errorf("positions = (%f, %f), expected (105, 96) with no correction", p.Low.Pos, p.High.Pos)
	}
	if p.Low.Dir != Forward || p.High.Dir != Backward {
		t.Errorf("directions changed: (%d, %d)", p.Low.Dir, p.High.Dir)
	}
}

func TestPairSeparationEnforced(t *testing.T) {
	tests := []struct {
		name     string
		pair     Pair
		expected float64 // High.Pos after one frame
	}{
		{
			name: "same direction closing",
			pair: Pair{
				Low:  Line{Pos: 100, Dir: Forward, Speed: 8},
				High: Line{Pos: 110, Dir: Forward, Speed: 1},
			},
			expected: 118,
		},
		{
			name: "moving apart already separated",
			pair: Pair{
				Low:  Line{Pos: 100, Dir: Backward, Speed: 1},
				High: Line{Pos: 200, Dir: Forward, Speed: 1},
			},
			expected: 201,
		},
		{
			name: "diverging but crossed",
			pair: Pair{
				Low:  Line{Pos: 300, Dir: Backward, Speed: 1},
				High: Line{Pos: 250, Dir: Forward, Speed: 1},
			},
			expected: 309,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.pair
			p.advance(0, 800)
			if p.High.Pos != tc.expected {
				t.Errorf("High.Pos = %f, expected %f", p.High.Pos, tc.expected)
			}
			if p.High.Pos-p.Low.Pos < RuntimeSeparation {
				t.Errorf("gap = %f, expected at least %f", p.High.Pos-p.Low.Pos, RuntimeSeparation)
			}
			if p.Low.Dir != tc.pair.Low.Dir || p.High.Dir != tc.pair.High.Dir {
				t.Error("ordering must not change directions")
			}
		})
	}
}

func TestChildBoxFromLines(t *testing.T) {
	lv := Level{
		Box:        core.NewBox(0, 0, 800, 800),
		Vertical:   Pair{Low: Line{Pos: 300}, High: Line{Pos: 500}},
		Horizontal: Pair{Low: Line{Pos: 200}, High: Line{Pos: 600}},
	}

	got := lv.childBox()
	want := core.NewBox(300, 200, 500, 600)
	if got != want {
		t.Errorf("childBox() = %s, expected %s", got, want)
	}
}

func TestChildBoxCrossedLines(t *testing.T) {
	lv := Level{
		Box:        core.NewBox(0, 0, 800, 800),
		Vertical:   Pair{Low: Line{Pos: 500}, High: Line{Pos: 300}},
		Horizontal: Pair{Low: Line{Pos: 600}, High: Line{Pos: 200}},
	}

	got := lv.childBox()
	want := core.NewBox(300, 200, 500, 600)
	if got != want {
		t.Errorf("childBox() = %s, expected %s", got, want)
	}
}

func TestChildBoxWidened(t *testing.T) {
	lv := Level{
		Box:        core.NewBox(0, 0, 800, 800),
		Vertical:   Pair{Low: Line{Pos: 400}, High: Line{Pos: 410}},
		Horizontal: Pair{Low: Line{Pos: 100}, High: Line{Pos: 700}},
	}

	got := lv.childBox()
	want := core.NewBox(390, 100, 420, 700)
	if got != want {
		t.Errorf("childBox() = %s, expected %s", got, want)
	}
}

func TestChildBoxAgainstEdge(t *testing.T) {
	// Lines pinned to the left edge: widening would leave the parent.
	lv := Level{
		Box:        core.NewBox(0, 0, 800, 800),
		Vertical:   Pair{Low: Line{Pos: 5}, High: Line{Pos: 15}},
		Horizontal: Pair{Low: Line{Pos: 785}, High: Line{Pos: 795}},
	}

	got := lv.childBox()
	want := core.NewBox(5, 765, 35, 795)
	if got != want {
		t.Errorf("childBox() = %s, expected %s", got, want)
	}
}

func TestChildBoxClampedToParent(t *testing.T) {
	// High was pushed past the bounce limit by the ordering rule.
	lv := Level{
		Box:        core.NewBox(100, 100, 300, 300),
		Vertical:   Pair{Low: Line{Pos: 200}, High: Line{Pos: 299}},
		Horizontal: Pair{Low: Line{Pos: 150}, High: Line{Pos: 250}},
	}

	got := lv.childBox()
	want := core.NewBox(200, 150, 295, 250)
	if got != want {
		t.Errorf("childBox() = %s, expected %s", got, want)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		lo, hi, minEdge, maxEdge float64
		wantLo, wantHi           float64
	}{
		{10, 50, 0, 100, 10, 50},
		{-20, 10, 0, 100, 0, 30},
		{90, 120, 0, 100, 70, 100},
		{-10, 110, 0, 100, 0, 100},
		{0, 30, 5, 25, 5, 25}, // parent narrower than the minimum
	}

	for _, tc := range tests {
		lo, hi := fit(tc.lo, tc.hi, tc.minEdge, tc.maxEdge)
		if lo != tc.wantLo || hi != tc.wantHi {
			t.Errorf("fit(%v, %v, %v, %v) = (%v, %v), expected (%v, %v)",
				tc.lo, tc.hi, tc.minEdge, tc.maxEdge, lo, hi, tc.wantLo, tc.wantHi)
		}
	}
}

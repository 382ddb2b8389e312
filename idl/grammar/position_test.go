package grammar

import (
	"testing"
)

// TestPositionTracker verifies position tracking through source text
func TestPositionTracker(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []struct {
			bytes int
			line  int
			char  int
			off   int
		}
	}{
		{
			name:   "single line",
			source: "interface IFoo",
			want: []struct {
				bytes int
				line  int
				char  int
				off   int
			}{
				{9, 1, 9, 9},   // "interface"
				{1, 1, 10, 10}, // " "
				{4, 1, 14, 14}, // "IFoo"
			},
		},
		{
			name:   "multi-line",
			source: "line1\nline2\nline3",
			want: []struct {
				bytes int
				line  int
				char  int
				off   int
			}{
				{5, 1, 5, 5},  // "line1"
				{1, 2, 0, 6},  // "\n"
				{5, 2, 5, 11}, // "line2"
				{1, 3, 0, 12}, // "\n"
				{5, 3, 5, 17}, // "line3"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewPositionTracker(tt.source)
			for i, step := range tt.want {
				tr.AdvanceBytes(step.bytes)
				got := tr.CurrentPosition()
				if got.Line != step.line || got.Character != step.char || got.Offset != step.off {
					t.Errorf("step %d: got line=%d char=%d off=%d, want line=%d char=%d off=%d",
						i, got.Line, got.Character, got.Offset, step.line, step.char, step.off)
				}
			}
		})
	}
}

// TestPositionTrackerAdvanceTo verifies absolute repositioning
func TestPositionTrackerAdvanceTo(t *testing.T) {
	tr := NewPositionTracker("ab\ncd")
	tr.AdvanceTo(4)
	got := tr.CurrentPosition()
	if got.Line != 2 || got.Character != 1 || got.Offset != 4 {
		t.Errorf("got %+v, want line=2 char=1 off=4", got)
	}

	// advancing backwards is a no-op
	tr.AdvanceTo(1)
	if tr.CurrentPosition().Offset != 4 {
		t.Errorf("AdvanceTo must never move backwards")
	}
}

// TestPositionTrackerClampsAtEnd verifies advancing past the end stops at EOF
func TestPositionTrackerClampsAtEnd(t *testing.T) {
	tr := NewPositionTracker("ab")
	tr.AdvanceBytes(10)
	got := tr.CurrentPosition()
	if got.Offset != 2 || got.Line != 1 || got.Character != 2 {
		t.Errorf("got %+v, want line=1 char=2 off=2", got)
	}
}

package grammar

// Position represents a line/column position in IDL source text
// Uses LSP conventions: 1-based line numbers, 0-based character offsets
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// PositionTracker maintains line/column/offset state during scanning
// Advances through source text, tracking position for each consumed byte
type PositionTracker struct {
	source    string
	line      int // 1-based
	character int // 0-based within line
	offset    int // 0-based in source
}

// NewPositionTracker creates a tracker starting at beginning of source
func NewPositionTracker(source string) *PositionTracker {
	return &PositionTracker{
		source:    source,
		line:      1,
		character: 0,
		offset:    0,
	}
}

// AdvanceBytes advances by n bytes, handling newlines by incrementing
// line and resetting character position
func (pt *PositionTracker) AdvanceBytes(n int) {
	for i := 0; i < n && pt.offset < len(pt.source); i++ {
		if pt.source[pt.offset] == '\n' {
			pt.line++
			pt.character = 0
		} else {
			pt.character++
		}
		pt.offset++
	}
}

// AdvanceTo advances until the tracker sits at byte offset off
func (pt *PositionTracker) AdvanceTo(off int) {
	if off > pt.offset {
		pt.AdvanceBytes(off - pt.offset)
	}
}

// CurrentPosition returns the current position snapshot
func (pt *PositionTracker) CurrentPosition() Position {
	return Position{
		Line:      pt.line,
		Character: pt.character,
		Offset:    pt.offset,
	}
}


package grammar

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokDocComment
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokStar
	tokComma
	tokColon
	tokSemi
)

var tokenNames = map[tokenKind]string{
	tokEOF:        "end of input",
	tokIdent:      "identifier",
	tokDocComment: "doc comment",
	tokLBrace:     "'{'",
	tokRBrace:     "'}'",
	tokLBracket:   "'['",
	tokRBracket:   "']'",
	tokLParen:     "'('",
	tokRParen:     "')'",
	tokStar:       "'*'",
	tokComma:      "','",
	tokColon:      "':'",
	tokSemi:       "';'",
}

func (k tokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "token"
}

// token is one lexical unit of IDL source. text is a substring of the
// original input, never a copy.
type token struct {
	kind tokenKind
	text string
	pos  Position
}

// scanner tokenizes IDL source. It skips whitespace and plain '//' comments,
// keeps '///' doc comment runs as single tokens, and supports raw capture of
// attribute text between '[' and ']' where normal tokenization does not apply.
type scanner struct {
	src string
	tr  *PositionTracker
}

func newScanner(src string) *scanner {
	return &scanner{src: src, tr: NewPositionTracker(src)}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// skipTrivia consumes whitespace and '//' comments, but stops at '///' runs.
// Horizontal whitespace that indents a '///' run is left unconsumed so the
// doc comment token carries the line's indentation.
func (s *scanner) skipTrivia() {
	for {
		off := s.tr.CurrentPosition().Offset
		if off >= len(s.src) {
			return
		}
		c := s.src[off]
		if c == ' ' || c == '\t' {
			j := off
			for j < len(s.src) && (s.src[j] == ' ' || s.src[j] == '\t') {
				j++
			}
			if strings.HasPrefix(s.src[j:], "///") {
				return
			}
			s.tr.AdvanceTo(j)
			continue
		}
		if c == '\r' || c == '\n' {
			s.tr.AdvanceBytes(1)
			continue
		}
		if strings.HasPrefix(s.src[off:], "//") && !strings.HasPrefix(s.src[off:], "///") {
			i := off
			for i < len(s.src) && s.src[i] != '\n' {
				i++
			}
			s.tr.AdvanceTo(i)
			continue
		}
		return
	}
}

// next returns the next token. Lexical errors surface as *ParseError.
func (s *scanner) next() (token, *ParseError) {
	s.skipTrivia()
	pos := s.tr.CurrentPosition()
	off := pos.Offset
	if off >= len(s.src) {
		return token{kind: tokEOF, pos: pos}, nil
	}

	// after skipTrivia the offset rests on horizontal whitespace only when
	// that whitespace indents a doc comment run
	c := s.src[off]
	if c == ' ' || c == '\t' || strings.HasPrefix(s.src[off:], "///") {
		return s.scanDocComment(), nil
	}
	if isIdentStart(c) {
		i := off
		for i < len(s.src) && isIdentByte(s.src[i]) {
			i++
		}
		s.tr.AdvanceTo(i)
		return token{kind: tokIdent, text: s.src[off:i], pos: pos}, nil
	}

	var kind tokenKind
	switch c {
	case '{':
		kind = tokLBrace
	case '}':
		kind = tokRBrace
	case '[':
		kind = tokLBracket
	case ']':
		kind = tokRBracket
	case '(':
		kind = tokLParen
	case ')':
		kind = tokRParen
	case '*':
		kind = tokStar
	case ',':
		kind = tokComma
	case ':':
		kind = tokColon
	case ';':
		kind = tokSemi
	default:
		return token{}, NewParseError(ErrorKindLexical, "unexpected character").
			WithPosition(pos).
			WithToken(s.src[off : off+1])
	}
	s.tr.AdvanceBytes(1)
	return token{kind: kind, text: s.src[off : off+1], pos: pos}, nil
}

// scanDocComment captures a run of consecutive '///' lines as one token.
// The captured text starts at the line's leading horizontal whitespace and
// runs through the newline ending the last line of the run, so the
// indentation of every line flows through to the generated output verbatim.
func (s *scanner) scanDocComment() token {
	pos := s.tr.CurrentPosition()
	start := pos.Offset
	end := start
	for {
		i := end
		for i < len(s.src) && s.src[i] != '\n' {
			i++
		}
		if i < len(s.src) {
			i++ // keep the newline
		}
		end = i

		j := end
		for j < len(s.src) && (s.src[j] == ' ' || s.src[j] == '\t') {
			j++
		}
		if !strings.HasPrefix(s.src[j:], "///") {
			break
		}
		end = j
	}
	s.tr.AdvanceTo(end)
	return token{kind: tokDocComment, text: s.src[start:end], pos: pos}
}

// scanAttributeText captures the raw text of one attribute inside a
// bracketed attribute list: everything up to the next top-level ',' or ']'.
// Parens nest so 'pointer_default(unique)' stays one attribute. The
// delimiter is left unconsumed.
func (s *scanner) scanAttributeText() (string, Position) {
	s.skipTrivia()
	pos := s.tr.CurrentPosition()
	start := pos.Offset
	depth := 0
	i := start
	for i < len(s.src) {
		switch s.src[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',', ']':
			if depth == 0 {
				s.tr.AdvanceTo(i)
				return strings.TrimRight(s.src[start:i], " \t\r\n"), pos
			}
		}
		i++
	}
	s.tr.AdvanceTo(i)
	return strings.TrimRight(s.src[start:i], " \t\r\n"), pos
}

package grammar

import (
	"fmt"
	"strings"
)

// Parse parses IDL source text into a parse tree rooted at a document node.
// On malformed input the returned error is a *ParseError carrying the source
// location of the first offending token.
func Parse(source string) (*Node, error) {
	p := &parser{sc: newScanner(source)}
	return p.parseDocument()
}

type parser struct {
	sc  *scanner
	buf *token // single-token lookahead
}

func (p *parser) peek() (token, *ParseError) {
	if p.buf == nil {
		tok, err := p.sc.next()
		if err != nil {
			return token{}, err
		}
		p.buf = &tok
	}
	return *p.buf, nil
}

func (p *parser) take() (token, *ParseError) {
	tok, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.buf = nil
	return tok, nil
}

func (p *parser) expect(kind tokenKind, where string) (token, *ParseError) {
	tok, err := p.take()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, NewParseError(ErrorKindSyntax,
			fmt.Sprintf("expected %s %s, found %s", kind, where, tok.kind)).
			WithPosition(tok.pos).
			WithToken(tok.text)
	}
	return tok, nil
}

func (p *parser) expectKeyword(word, where string) (token, *ParseError) {
	tok, err := p.take()
	if err != nil {
		return token{}, err
	}
	if tok.kind != tokIdent || tok.text != word {
		return token{}, NewParseError(ErrorKindSyntax,
			fmt.Sprintf("expected '%s' %s, found %s", word, where, tok.kind)).
			WithPosition(tok.pos).
			WithToken(tok.text)
	}
	return tok, nil
}

func (p *parser) parseDocument() (*Node, error) {
	doc := newNode(KindDocument, "", Position{Line: 1})
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return doc, nil
		}
		iface, perr := p.parseInterface()
		if perr != nil {
			return nil, perr
		}
		doc.append(iface)
	}
}

// attrText is one raw attribute captured from a bracketed list
type attrText struct {
	text string
	pos  Position
}

// parseAttributeTexts consumes '[' attr ("," attr)* ']' and returns the raw
// attribute texts. Callers decide the node kind each text becomes.
func (p *parser) parseAttributeTexts() ([]attrText, *ParseError) {
	if _, err := p.expect(tokLBracket, "to open an attribute list"); err != nil {
		return nil, err
	}
	var attrs []attrText
	for {
		// raw capture requires the lookahead buffer to be empty, which
		// holds after every take above and below
		text, pos := p.sc.scanAttributeText()
		if text != "" {
			attrs = append(attrs, attrText{text: text, pos: pos})
		}
		tok, err := p.take()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokComma:
			continue
		case tokRBracket:
			return attrs, nil
		default:
			return nil, NewParseError(ErrorKindSyntax,
				fmt.Sprintf("expected ',' or ']' in attribute list, found %s", tok.kind)).
				WithPosition(tok.pos).
				WithToken(tok.text)
		}
	}
}

// uuidPayload extracts the identifier inside a 'uuid(...)' attribute
func uuidPayload(attr string) (string, bool) {
	if !strings.HasPrefix(attr, "uuid(") || !strings.HasSuffix(attr, ")") {
		return "", false
	}
	return strings.TrimSpace(attr[len("uuid(") : len(attr)-1]), true
}

func (p *parser) parseInterface() (*Node, *ParseError) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	n := newNode(KindInterface, "", tok.pos)

	if tok.kind == tokDocComment {
		doc, _ := p.take()
		n.append(newNode(KindDocComment, doc.text, doc.pos))
		if tok, err = p.peek(); err != nil {
			return nil, err
		}
	}

	if tok.kind == tokLBracket {
		attrs, err := p.parseAttributeTexts()
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			if inner, ok := uuidPayload(a.text); ok {
				n.append(newNode(KindUUID, inner, a.pos))
			} else {
				n.append(newNode(KindOtherAttribute, a.text, a.pos))
			}
		}
	}

	if _, err := p.expectKeyword("interface", "to begin an interface declaration"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "as the interface name")
	if err != nil {
		return nil, err
	}
	n.append(newNode(KindInterfaceName, name.text, name.pos))

	if _, err := p.expect(tokColon, "after the interface name"); err != nil {
		return nil, err.WithSuggestion("every interface declares a parent, e.g. 'interface IFoo : IUnknown'")
	}
	parent, err := p.expect(tokIdent, "as the parent interface name")
	if err != nil {
		return nil, err
	}
	n.append(newNode(KindParent, parent.text, parent.pos))

	if _, err := p.expect(tokLBrace, "to open the interface body"); err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRBrace {
			p.buf = nil
			break
		}
		if tok.kind == tokEOF {
			return nil, NewParseError(ErrorKindSyntax,
				fmt.Sprintf("unterminated body of interface '%s'", name.text)).
				WithPosition(tok.pos).
				WithSuggestion("add a closing '}'")
		}
		member, perr := p.parseMember()
		if perr != nil {
			return nil, perr
		}
		n.append(member)
	}

	// trailing ';' after the closing brace is optional
	if tok, err := p.peek(); err == nil && tok.kind == tokSemi {
		p.buf = nil
	} else if err != nil {
		return nil, err
	}
	return n, nil
}

// parseMember parses one interface-body declaration: a method, a nested
// typedef enum, or a nested typedef struct, each optionally preceded by a
// doc comment and an attribute list.
func (p *parser) parseMember() (*Node, *ParseError) {
	var doc *Node
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokDocComment {
		d, _ := p.take()
		doc = newNode(KindDocComment, d.text, d.pos)
		if tok, err = p.peek(); err != nil {
			return nil, err
		}
	}

	var attrs []attrText
	if tok.kind == tokLBracket {
		if attrs, err = p.parseAttributeTexts(); err != nil {
			return nil, err
		}
	}

	first, err := p.expect(tokIdent, "to begin an interface member")
	if err != nil {
		return nil, err
	}
	if first.text == "typedef" {
		kw, err := p.take()
		if err != nil {
			return nil, err
		}
		switch {
		case kw.kind == tokIdent && kw.text == "enum":
			return p.parseTypedefEnum(first.pos, doc, attrs)
		case kw.kind == tokIdent && kw.text == "struct":
			return p.parseTypedefStruct(first.pos, doc, attrs)
		default:
			return nil, NewParseError(ErrorKindSyntax,
				fmt.Sprintf("expected 'enum' or 'struct' after 'typedef', found %s", kw.kind)).
				WithPosition(kw.pos).
				WithToken(kw.text)
		}
	}
	return p.parseMethod(doc, attrs, first)
}

func (p *parser) parseMethod(doc *Node, attrs []attrText, first token) (*Node, *ParseError) {
	n := newNode(KindMethod, "", first.pos)
	if doc != nil {
		n.Pos = doc.Pos
		n.append(doc)
	}
	for _, a := range attrs {
		n.append(newNode(KindOtherAttribute, a.text, a.pos))
	}

	typ, err := p.parseType(first)
	if err != nil {
		return nil, err
	}
	n.append(typ)

	name, err := p.expect(tokIdent, "as the method name")
	if err != nil {
		return nil, err
	}
	n.append(newNode(KindMethodName, name.text, name.pos))

	if _, err := p.expect(tokLParen, "to open the parameter list"); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokRParen {
		p.buf = nil
	} else {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			n.append(param)
			tok, terr := p.take()
			if terr != nil {
				return nil, terr
			}
			if tok.kind == tokComma {
				continue
			}
			if tok.kind == tokRParen {
				break
			}
			return nil, NewParseError(ErrorKindSyntax,
				fmt.Sprintf("expected ',' or ')' in parameter list, found %s", tok.kind)).
				WithPosition(tok.pos).
				WithToken(tok.text)
		}
	}
	if _, err := p.expect(tokSemi, "after the method declaration"); err != nil {
		return nil, err.WithSuggestion("terminate method declarations with ';'")
	}
	return n, nil
}

func (p *parser) parseParameter() (*Node, *ParseError) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	n := newNode(KindParameter, "", tok.pos)

	if tok.kind == tokLBracket {
		attrs, err := p.parseAttributeTexts()
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			n.append(newNode(KindParameterAttribute, a.text, a.pos))
		}
	}

	first, err := p.expect(tokIdent, "to begin a parameter type")
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType(first)
	if err != nil {
		return nil, err
	}
	n.append(typ)

	name, err := p.expect(tokIdent, "as the parameter name")
	if err != nil {
		return nil, err
	}
	n.append(newNode(KindIdentifier, name.text, name.pos))
	return n, nil
}

// parseType parses a base identifier plus its pointer/const qualifiers.
// first is the already-consumed leading identifier, which is either the base
// type name or a leading 'const'. Qualifier children appear in source order;
// restoring outermost-first order is the resolver's job, not the parser's.
func (p *parser) parseType(first token) (*Node, *ParseError) {
	n := newNode(KindType, "", first.pos)
	base := first
	if first.text == "const" {
		n.append(newNode(KindConst, first.text, first.pos))
		var err *ParseError
		if base, err = p.expect(tokIdent, "as the type name after 'const'"); err != nil {
			return nil, err
		}
	}
	n.append(newNode(KindIdentifier, base.text, base.pos))

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokStar {
			p.buf = nil
			n.append(newNode(KindPointer, tok.text, tok.pos))
			continue
		}
		if tok.kind == tokIdent && tok.text == "const" {
			p.buf = nil
			n.append(newNode(KindConst, tok.text, tok.pos))
			continue
		}
		return n, nil
	}
}

func (p *parser) parseTypedefEnum(pos Position, doc *Node, attrs []attrText) (*Node, *ParseError) {
	n := newNode(KindTypedefEnum, "", pos)
	if doc != nil {
		n.Pos = doc.Pos
		n.append(doc)
	}
	for _, a := range attrs {
		n.append(newNode(KindOtherAttribute, a.text, a.pos))
	}

	// optional tag name before the brace; the trailing typedef name, when
	// present, overwrites it downstream
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokIdent {
		p.buf = nil
		n.append(newNode(KindIdentifier, tok.text, tok.pos))
	}

	if _, err := p.expect(tokLBrace, "to open the enum body"); err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRBrace {
			p.buf = nil
			break
		}

		v := newNode(KindVariant, "", tok.pos)
		if tok.kind == tokDocComment {
			d, _ := p.take()
			v.append(newNode(KindDocComment, d.text, d.pos))
		}
		name, err := p.expect(tokIdent, "as the enum variant name")
		if err != nil {
			return nil, err
		}
		v.append(newNode(KindIdentifier, name.text, name.pos))
		n.append(v)

		sep, err := p.peek()
		if err != nil {
			return nil, err
		}
		if sep.kind == tokComma {
			p.buf = nil
		} else if sep.kind != tokRBrace {
			return nil, NewParseError(ErrorKindSyntax,
				fmt.Sprintf("expected ',' or '}' after enum variant, found %s", sep.kind)).
				WithPosition(sep.pos).
				WithToken(sep.text)
		}
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokIdent {
		p.buf = nil
		n.append(newNode(KindIdentifier, tok.text, tok.pos))
	}
	if _, err := p.expect(tokSemi, "after the enum typedef"); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseTypedefStruct(pos Position, doc *Node, attrs []attrText) (*Node, *ParseError) {
	n := newNode(KindTypedefStruct, "", pos)
	if doc != nil {
		n.Pos = doc.Pos
		n.append(doc)
	}
	for _, a := range attrs {
		n.append(newNode(KindOtherAttribute, a.text, a.pos))
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokIdent {
		p.buf = nil
		n.append(newNode(KindIdentifier, tok.text, tok.pos))
	}

	if _, err := p.expect(tokLBrace, "to open the struct body"); err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRBrace {
			p.buf = nil
			break
		}

		f := newNode(KindField, "", tok.pos)
		if tok.kind == tokDocComment {
			d, _ := p.take()
			f.append(newNode(KindDocComment, d.text, d.pos))
		}
		first, err := p.expect(tokIdent, "to begin a struct field type")
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType(first)
		if err != nil {
			return nil, err
		}
		f.append(typ)
		name, err := p.expect(tokIdent, "as the struct field name")
		if err != nil {
			return nil, err
		}
		f.append(newNode(KindIdentifier, name.text, name.pos))
		if _, err := p.expect(tokSemi, "after the struct field"); err != nil {
			return nil, err
		}
		n.append(f)
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokIdent {
		p.buf = nil
		n.append(newNode(KindIdentifier, tok.text, tok.pos))
	}
	if _, err := p.expect(tokSemi, "after the struct typedef"); err != nil {
		return nil, err
	}
	return n, nil
}

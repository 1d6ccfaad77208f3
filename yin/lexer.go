package yin

import (
	"io"

	xml "github.com/andaru/flexml"
)

// CursorState names the lexical adapter's position, per spec.md §2/§6. Since
// github.com/andaru/flexml (like encoding/xml) yields a start element with
// its full attribute list already attached, AtAttribute/AtAttributeValue
// are folded into AtElementStart here: callers read attributes directly off
// the Token's Start.Attr slice rather than stepping through them one at a
// time. The states are kept as a documented vocabulary because the
// dispatcher (childtable.go) branches on them.
type CursorState int8

const (
	AtElementStart CursorState = iota
	AtAttribute
	AtAttributeValue
	AtText
	AtElementEnd
	AtEOF
)

func (s CursorState) String() string {
	switch s {
	case AtElementStart:
		return "AtElementStart"
	case AtAttribute:
		return "AtAttribute"
	case AtAttributeValue:
		return "AtAttributeValue"
	case AtText:
		return "AtText"
	case AtElementEnd:
		return "AtElementEnd"
	case AtEOF:
		return "AtEOF"
	default:
		return "AtUnknown"
	}
}

// Token is one position of the lexical adapter's cursor.
type Token struct {
	State CursorState
	Start xml.StartElement
	End   xml.EndElement
	Text  []byte
}

// Lexer is the lexical adapter: a cursor over a YIN XML document, driving
// github.com/andaru/flexml the way andaru-opr8/dom/unmarshaler.go's
// UnmarshalXML token loop does, but surfaced as a pull cursor instead of a
// push (TokenDecoder) callback, since the statement-driven descent parser
// is itself the recursive caller here.
type Lexer struct {
	dec *xml.Decoder
	cr  *lineCountReader
}

// NewLexer returns a Lexer reading a YIN document from r.
func NewLexer(r io.Reader) *Lexer {
	cr := &lineCountReader{r: r, line: 1}
	return &Lexer{dec: xml.NewDecoder(cr), cr: cr}
}

// Line returns the current 1-based input line number, used to annotate
// diagnostics (spec.md §6, "parser context... line counter at termination").
func (l *Lexer) Line() int { return l.cr.line }

// Next advances the cursor and returns the next token. Comments and
// processing instructions are silently skipped (this parser has no use for
// them); once the input is exhausted, Next returns Token{State: AtEOF} with
// a nil error rather than io.EOF.
func (l *Lexer) Next() (Token, error) {
	for {
		t, err := l.dec.Token()
		if err != nil {
			if err == io.EOF {
				return Token{State: AtEOF}, nil
			}
			return Token{}, err
		}
		switch tok := t.(type) {
		case xml.StartElement:
			return Token{State: AtElementStart, Start: tok}, nil
		case xml.EndElement:
			return Token{State: AtElementEnd, End: tok}, nil
		case xml.CharData:
			return Token{State: AtText, Text: tok.Copy()}, nil
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		default:
			continue
		}
	}
}

// lineCountReader wraps an io.Reader, tracking the 1-based line number of
// the most recently delivered byte. This generalizes andaru-opr8's
// countReader (dom/unmarshaler.go), which counts bytes only, to also track
// newlines so parse errors can be attributed to a source line.
type lineCountReader struct {
	r    io.Reader
	line int
}

func (c *lineCountReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	for _, by := range b[:n] {
		if by == '\n' {
			c.line++
		}
	}
	return n, err
}

// attrIsUnprefixed resolves an xml.Attr's unprefixed-ness: an attribute is
// "unprefixed" (per spec.md §4.2) when it carries no namespace of its own,
// which in flexml's resolved-Name model means an empty Space.
func attrIsUnprefixed(a xml.Attr) bool { return a.Name.Space == "" }

// Package subtree provides an owned, self-contained XML element tree
// (Element) plus Extract, the chunked-read routine that locates the byte
// range of a single <spectrum> or <chromatogram> element and parses it as
// a standalone document.
//
// Unlike the streaming header parser's transient node tree, an Element
// never aliases any other parse tree: each call to Extract or to the
// header parser's subtree capture produces an independent value the
// caller owns and may drop on its own schedule.
package subtree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/sciops/mzml/internal/pool"
	"github.com/sciops/mzml/mzmlerr"
)

// ElementKind distinguishes the two root element shapes the indexer and
// extractor deal with.
type ElementKind uint8

const (
	// KindSpectrum roots a <spectrum> subtree.
	KindSpectrum ElementKind = iota
	// KindChromatogram roots a <chromatogram> subtree.
	KindChromatogram
)

// Element is an owned, boxed tree node: a tag name, its attributes in
// document order, any direct text content, and its children.
type Element struct {
	Tag      string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenTagged returns the immediate children whose tag matches name.
func (e *Element) ChildrenTagged(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildTagged returns the first immediate child whose tag matches
// name, or nil.
func (e *Element) FirstChildTagged(name string) *Element {
	for _, c := range e.Children {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// Parse decodes a standalone XML fragment into an owned Element tree
// rooted at its single top-level element.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	root, err := parseOne(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: subtree parse: %v", mzmlerr.ErrFormat, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: subtree parse: empty fragment", mzmlerr.ErrFormat)
	}
	return root, nil
}

// Capture builds an owned Element tree from dec, given a StartElement
// already consumed from it (typically by a caller inspecting tag names as
// it streams through a larger document, e.g. the header parser's dispatch
// loop). The returned Element shares no state with dec's internal buffers
// once this call returns, satisfying the same "self-contained, independent
// of the transient parse tree" property Extract provides.
func Capture(dec *xml.Decoder, start xml.StartElement) (*Element, error) {
	el, err := buildElement(dec, start)
	if err != nil {
		return nil, fmt.Errorf("%w: subtree capture: %v", mzmlerr.ErrFormat, err)
	}
	return el, nil
}

// parseOne consumes tokens until it has built exactly one complete element
// tree (the first StartElement found), then returns.
func parseOne(dec *xml.Decoder) (*Element, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return buildElement(dec, start)
		}
	}
}

// buildElement recursively consumes tokens for one element, given its
// already-read StartElement, until the matching EndElement.
func buildElement(dec *xml.Decoder, start xml.StartElement) (*Element, error) {
	el := &Element{
		Tag:   start.Name.Local,
		Attrs: append([]xml.Attr{}, start.Attr...),
	}

	var text bytes.Buffer
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := buildElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			el.Text = text.String()
			return el, nil
		}
	}
}

// Extract reads forward from r (callers pass a fresh cursor that begins
// exactly at the element's start offset; Extract never seeks) in 4KiB
// chunks (8x512), then reads up to 12 additional
// bytes one at a time, stopping at '<', '>', or a space so a tag name is
// never split across the chunk boundary, then searches the accumulated
// buffer for the close tag matching kind. The byte range [0, matchEnd) of
// the accumulated buffer (relative to offset) is parsed as a standalone
// document and its root Element returned.
func Extract(r io.Reader, kind ElementKind) (*Element, error) {
	const chunkSize = 512 * 8
	const maxTagLookahead = 12

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	chunk := make([]byte, chunkSize)

	closeTag := closeTagFor(kind)

	for {
		n, err := io.ReadFull(r, chunk)
		if n > 0 {
			_, _ = buf.Write(chunk[:n])
		}

		eof := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !eof {
			return nil, err
		}

		tail, tailErr := readUntilTagBoundary(r, maxTagLookahead)
		if len(tail) > 0 {
			_, _ = buf.Write(tail)
		}
		if tailErr != nil {
			return nil, tailErr
		}

		if idx := bytes.Index(buf.Bytes(), closeTag); idx >= 0 {
			end := idx + len(closeTag)
			return Parse(buf.Bytes()[:end])
		}

		if eof {
			return nil, fmt.Errorf("%w: subtree extract: close tag not found before end of file", mzmlerr.ErrFormat)
		}
	}
}

func closeTagFor(kind ElementKind) []byte {
	if kind == KindChromatogram {
		return []byte("</chromatogram>")
	}
	return []byte("</spectrum>")
}

// readUntilTagBoundary reads up to maxLen bytes one at a time, stopping
// early at '<', '>', or a space.
func readUntilTagBoundary(r io.Reader, maxLen int) ([]byte, error) {
	out := make([]byte, 0, maxLen)
	one := make([]byte, 1)

	for len(out) < maxLen {
		n, err := r.Read(one)
		if n == 1 {
			out = append(out, one[0])
			if one[0] == '<' || one[0] == '>' || one[0] == ' ' {
				return out, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, err
		}
	}

	return out, nil
}

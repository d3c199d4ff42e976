package source

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

var encodingRe = regexp.MustCompile(`encoding="([A-Za-z0-9-]+)"`)

// peekWindow is large enough to cover any real-world XML declaration's
// encoding="..." attribute without requiring a full line read.
const peekWindow = 256

// DetectEncoding peeks at br's first line (without consuming it, so br can
// still be handed to a decoder afterward) and searches it for an XML
// declaration's encoding="..." attribute. It returns "UTF-8" when no
// declaration is found.
// br must have been constructed with enough buffer capacity to peek
// peekWindow bytes (bufio.NewReader's default 4096-byte buffer suffices).
func DetectEncoding(br *bufio.Reader) (string, error) {
	peek, err := br.Peek(peekWindow)
	if err != nil && len(peek) == 0 {
		return "", err
	}

	if idx := bytes.IndexByte(peek, '\n'); idx >= 0 {
		peek = peek[:idx]
	}

	if m := encodingRe.FindSubmatch(peek); m != nil {
		return string(m[1]), nil
	}
	return "UTF-8", nil
}

// IsEncodingSupported reports whether enc, an XML-declared encoding name,
// can be read as raw UTF-8 bytes. mzML documents outside UTF-8/US-ASCII
// are rare enough that pulling in golang.org/x/text's charset-conversion
// tables for this buys little; a document declaring anything else has no
// decoder wired in and is rejected explicitly here rather than silently
// mis-decoded downstream.
func IsEncodingSupported(enc string) bool {
	switch strings.ToUpper(enc) {
	case "", "UTF-8", "UTF8", "US-ASCII", "ASCII":
		return true
	default:
		return false
	}
}

// Package document loads the LEFT-OFF journal from a .docx file and
// flattens it into an ordered list of classified blocks. Classification is
// purely structural: paragraph styles decide the kind, content is passed
// through untouched.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// Kind classifies one block of the document.
type Kind int

const (
	// Body is any styled-or-plain paragraph that is not a recognized heading.
	Body Kind = iota
	// Heading1 marks the start of a daily section; its text is expected to
	// be an 8-digit YYYYMMDD date by document convention.
	Heading1
	// Heading2 is a sub-section label within a daily section, e.g. "LEFT-OFF".
	Heading2
)

func (k Kind) String() string {
	switch k {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	default:
		return "body"
	}
}

// Block is one semantic unit of the source document in original order.
type Block struct {
	Kind Kind
	Text string
}

// ErrMalformed indicates the underlying file could not be traversed at all.
// This is the only fatal condition the scanner reports; odd content inside
// an otherwise readable document never fails the scan.
var ErrMalformed = errors.New("malformed document")

// Load opens a .docx file and returns its paragraphs as classified blocks.
// Empty paragraphs are skipped; everything else is preserved in document
// order. The newest daily section is expected at the top, but Load does not
// verify that — ordering is the extractor's concern.
func Load(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMalformed, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrMalformed, path, err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrMalformed, path, err)
	}
	return scan(doc), nil
}

// scan walks the document body and classifies each non-empty paragraph.
func scan(doc *docx.Docx) []Block {
	var blocks []Block
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{Kind: classify(paragraphStyle(para)), Text: text})
	}
	return blocks
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// classify maps a docx paragraph style name to a block kind. Word names
// heading styles either "Heading1" or "heading 1" depending on producer.
// Heading levels 3+ have no distinct meaning in the journal and fall
// through to Body.
func classify(style string) Kind {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	switch s {
	case "heading1":
		return Heading1
	case "heading2":
		return Heading2
	}
	return Body
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

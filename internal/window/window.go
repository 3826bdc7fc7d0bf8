// Package window extracts the trailing seven-day span of daily sections
// from a scanned journal. The journal keeps its newest section first, so
// extraction is a single forward pass that halts at the first section whose
// date heading is old enough to fall outside the window.
package window

import (
	"fmt"
	"time"

	"github.com/hyperifyio/leftoffsum/internal/document"
)

// Verdict is the boundary decision for one level-1 heading.
type Verdict int

const (
	// InWindow means the heading's date is within the trailing window and
	// its section should be kept.
	InWindow Verdict = iota
	// Stop means the heading's date is at or before the cutoff; the scan
	// halts without keeping it.
	Stop
	// Unparseable means the heading text is not an 8-digit YYYYMMDD date.
	Unparseable
)

// dateLayout is the heading date format used throughout the journal.
const dateLayout = "20060102"

// Cutoff returns the stop boundary for a given reference date: eight
// calendar days earlier, normalized to midnight so comparisons are by
// calendar date regardless of the reference's time-of-day.
func Cutoff(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -8)
}

// Evaluate decides whether a level-1 heading starts a section that is still
// inside the window. A date strictly after the cutoff is in-window; a date
// at or before it is the stop boundary. Anything that is not an 8-digit
// date is Unparseable and left to the extractor's policy.
func Evaluate(headingText string, cutoff time.Time) Verdict {
	if len(headingText) != len(dateLayout) {
		return Unparseable
	}
	d, err := time.ParseInLocation(dateLayout, headingText, time.UTC)
	if err != nil {
		return Unparseable
	}
	if d.After(cutoff) {
		return InWindow
	}
	return Stop
}

// Sink receives diagnostics emitted during extraction. Implementations must
// not block; the extractor calls it inline.
type Sink interface {
	Record(level string, message string)
}

// NopSink discards all diagnostics.
type NopSink struct{}

func (NopSink) Record(string, string) {}

// Extractor accumulates the in-window prefix of a block sequence.
type Extractor struct {
	// Diag receives warnings about unparseable date headings. Nil means
	// diagnostics are discarded.
	Diag Sink
}

// Extract returns the prefix of blocks spanning every daily section newer
// than the cutoff derived from ref. Blocks arrive newest-section-first; the
// pass ends at the first heading dated at or before the cutoff, and that
// heading and everything after it are excluded. A document with no dated
// headings, or one shorter than eight days of history, is returned whole.
func (e *Extractor) Extract(blocks []document.Block, ref time.Time) []document.Block {
	cutoff := Cutoff(ref)
	kept := make([]document.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind == document.Heading1 {
			switch Evaluate(b.Text, cutoff) {
			case Stop:
				return kept
			case Unparseable:
				// Every level-1 heading should hold a date by document
				// contract. Keeping the section favors completeness over
				// truncating on one malformed heading.
				e.warn(fmt.Sprintf("heading %q is not a YYYYMMDD date; keeping its section", b.Text))
			}
		}
		kept = append(kept, b)
	}
	return kept
}

func (e *Extractor) warn(msg string) {
	if e.Diag == nil {
		return
	}
	e.Diag.Record("warn", msg)
}

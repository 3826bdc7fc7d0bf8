package window

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/leftoffsum/internal/document"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type memSink struct {
	entries []string
}

func (s *memSink) Record(level, message string) {
	s.entries = append(s.entries, level+": "+message)
}

func TestCutoff_EightDaysBack(t *testing.T) {
	got := Cutoff(date(2023, 11, 15))
	if want := date(2023, 11, 7); !got.Equal(want) {
		t.Fatalf("cutoff: got %v, want %v", got, want)
	}
}

func TestCutoff_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2023, 11, 15, 23, 59, 59, 0, time.UTC)
	if !Cutoff(late).Equal(date(2023, 11, 7)) {
		t.Fatalf("cutoff from late-evening reference: got %v", Cutoff(late))
	}
}

func TestEvaluate_Boundary(t *testing.T) {
	cutoff := Cutoff(date(2023, 11, 15))
	cases := []struct {
		heading string
		want    Verdict
	}{
		{"20231115", InWindow}, // today
		{"20231108", InWindow}, // exactly 7 days old
		{"20231107", Stop},     // exactly 8 days old
		{"20231101", Stop},
		{"20240101", InWindow}, // future dates stay in-window
		{"TODAY", Unparseable},
		{"2023-11-15", Unparseable},
		{"202311", Unparseable},
		{"2023111x", Unparseable},
		{"", Unparseable},
	}
	for _, c := range cases {
		if got := Evaluate(c.heading, cutoff); got != c.want {
			t.Fatalf("Evaluate(%q): got %v, want %v", c.heading, got, c.want)
		}
	}
}

func TestExtract_StopsAtCutoffSection(t *testing.T) {
	in := []document.Block{
		{Kind: document.Heading1, Text: "20231115"},
		{Kind: document.Heading2, Text: "LEFT-OFF"},
		{Kind: document.Body, Text: "did X"},
		{Kind: document.Heading1, Text: "20231108"},
		{Kind: document.Heading2, Text: "LEFT-OFF"},
		{Kind: document.Body, Text: "did Y"},
		{Kind: document.Heading1, Text: "20231105"},
		{Kind: document.Heading2, Text: "LEFT-OFF"},
		{Kind: document.Body, Text: "did Z"},
	}
	e := &Extractor{}
	got := e.Extract(in, date(2023, 11, 15))
	want := in[:6]
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extract: got %v, want %v", got, want)
	}
}

func TestExtract_DocumentShorterThanWindow(t *testing.T) {
	in := []document.Block{
		{Kind: document.Heading1, Text: "20231115"},
		{Kind: document.Body, Text: "did X"},
		{Kind: document.Heading1, Text: "20231114"},
		{Kind: document.Body, Text: "did Y"},
	}
	e := &Extractor{}
	if got := (e.Extract(in, date(2023, 11, 15))); !reflect.DeepEqual(got, in) {
		t.Fatalf("expected whole document, got %v", got)
	}
}

func TestExtract_NoDatedHeadings(t *testing.T) {
	in := []document.Block{
		{Kind: document.Heading2, Text: "Notes"},
		{Kind: document.Body, Text: "free-form text"},
	}
	e := &Extractor{}
	if got := e.Extract(in, date(2023, 11, 15)); !reflect.DeepEqual(got, in) {
		t.Fatalf("expected pass-through, got %v", got)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := &Extractor{}
	if got := e.Extract(nil, date(2023, 11, 15)); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestExtract_UnparseableHeadingWarnsAndContinues(t *testing.T) {
	in := []document.Block{
		{Kind: document.Heading1, Text: "TODAY"},
		{Kind: document.Body, Text: "did X"},
		{Kind: document.Heading1, Text: "20231108"},
		{Kind: document.Body, Text: "did Y"},
		{Kind: document.Heading1, Text: "20231105"},
		{Kind: document.Body, Text: "did Z"},
	}
	sink := &memSink{}
	e := &Extractor{Diag: sink}
	got := e.Extract(in, date(2023, 11, 15))
	if want := in[:4]; !reflect.DeepEqual(got, want) {
		t.Fatalf("extract: got %v, want %v", got, want)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected one diagnostic, got %v", sink.entries)
	}
	if !strings.HasPrefix(sink.entries[0], "warn: ") || !strings.Contains(sink.entries[0], "TODAY") {
		t.Fatalf("unexpected diagnostic: %q", sink.entries[0])
	}
}

func TestExtract_NothingAfterStopIsEvaluated(t *testing.T) {
	// A malformed heading behind the cutoff must never be reached, so it
	// must not produce a diagnostic.
	in := []document.Block{
		{Kind: document.Heading1, Text: "20231110"},
		{Kind: document.Body, Text: "recent"},
		{Kind: document.Heading1, Text: "20231101"},
		{Kind: document.Heading1, Text: "GARBAGE"},
	}
	sink := &memSink{}
	e := &Extractor{Diag: sink}
	got := e.Extract(in, date(2023, 11, 15))
	if want := in[:2]; !reflect.DeepEqual(got, want) {
		t.Fatalf("extract: got %v, want %v", got, want)
	}
	if len(sink.entries) != 0 {
		t.Fatalf("expected no diagnostics past the stop boundary, got %v", sink.entries)
	}
}

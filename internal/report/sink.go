package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Sink renders reports. Passing reports are ignored by the built-in sinks.
type Sink interface {
	Emit(Report) error
	Summarize(Summary) error
}

const bannerWidth = 30

// banner centers title in a line of asterisks.
func banner(title string) string {
	pad := bannerWidth - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	right := pad - left
	return strings.Repeat("*", left) + title + strings.Repeat("*", right)
}

// TextSink writes the console banner format.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes a failed or faulted report as a banner block.
func (s *TextSink) Emit(r Report) error {
	var b strings.Builder
	switch r.Status {
	case StatusFailed:
		fmt.Fprintln(&b, banner("ERRORS"))
		writeCheck(&b, r)
		fmt.Fprintln(&b, r.Call)
		fmt.Fprintf(&b, "Errors appear in %d records\n", r.FailingCount)
		if len(r.Failing) > 0 {
			fmt.Fprintf(&b, "[%s]\n", strings.Join(r.Failing, ", "))
		}
	case StatusFault:
		fmt.Fprintln(&b, banner("ERRORS"))
		writeCheck(&b, r)
		fmt.Fprintf(&b, "Please double check your script :: %s\n", r.Call)
		fmt.Fprintf(&b, "Exception :: %s\n", r.Error)
	default:
		return nil
	}
	b.WriteString(strings.Repeat("*", bannerWidth))
	b.WriteString("\n\n")
	_, err := io.WriteString(s.w, b.String())
	return err
}

func writeCheck(b *strings.Builder, r Report) {
	fmt.Fprintf(b, "Check :: %s\n", r.Check)
	if r.Description != "" {
		fmt.Fprintf(b, "Description :: %s\n", r.Description)
	}
}

// Summarize writes a one-line tally.
func (s *TextSink) Summarize(sum Summary) error {
	_, err := fmt.Fprintf(s.w, "%d checks: %d passed, %d failed, %d faulted (%s)\n",
		sum.Checks, sum.Passed, sum.Failed, sum.Faults, sum.Duration.Round(time.Millisecond))
	return err
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit encodes failed and faulted reports.
func (s *JSONSink) Emit(r Report) error {
	if r.Status == StatusPassed {
		return nil
	}
	return s.enc.Encode(struct {
		Type string `json:"type"`
		Report
	}{Type: "report", Report: r})
}

// Summarize encodes the summary as the final line.
func (s *JSONSink) Summarize(sum Summary) error {
	return s.enc.Encode(struct {
		Type string `json:"type"`
		Summary
	}{Type: "summary", Summary: sum})
}

// NewSink returns the sink for a report format name ("text" or "json").
func NewSink(format string, w io.Writer) (Sink, error) {
	switch format {
	case "", "text":
		return NewTextSink(w), nil
	case "json":
		return NewJSONSink(w), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

package lineardoc

import (
	"io"
	"log/slog"
	"strings"
)

// Orchestrator wires the pipeline described in spec.md §2:
// Parser.Feed → Doc.WrapSections → Doc.Segment → Doc.GetHTML.
type Orchestrator struct {
	Contextualizer *Contextualizer
	Boundary       BoundaryFunc
	Logger         *slog.Logger
}

// NewOrchestrator builds an Orchestrator. logger may be nil, in which
// case a discarding logger is used.
func NewOrchestrator(ctx *Contextualizer, boundary BoundaryFunc, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{Contextualizer: ctx, Boundary: boundary, Logger: logger}
}

// Translate runs the full pipeline over rawHTML and returns the prepared
// HTML. An empty or whitespace-only input is rejected with ErrEmptyInput.
func (o *Orchestrator) Translate(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", ErrEmptyInput
	}

	p := NewParser(o.Contextualizer)
	doc, err := p.Feed(rawHTML)
	if err != nil {
		o.Logger.Error("parse failed", "error", err)
		return "", err
	}

	doc = doc.WrapSections()

	doc, err = doc.Segment(o.Boundary)
	if err != nil {
		o.Logger.Error("segmentation failed", "error", err)
		return "", err
	}

	out := doc.GetHTML()
	o.Logger.Debug("translate complete", "bytes_in", len(rawHTML), "bytes_out", len(out))
	return out, nil
}

package planner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tripforge/tripforge/internal/llm"
	"github.com/tripforge/tripforge/internal/metrics"
	"github.com/tripforge/tripforge/internal/plan"
)

const editSystemPrompt = "You edit a travel itinerary JSON when given user change requests. Return JSON only."

// editBackend is one way of applying a free-text change to a plan.
type editBackend interface {
	Name() string
	Edit(ctx context.Context, message string, current plan.Plan) (plan.Plan, error)
}

// Editor applies free-text edit requests to plans. Backends are attempted in
// priority order, one attempt each, first success wins; the last backend is
// deterministic and cannot fail, so ApplyEdit always returns a plan.
type Editor struct {
	backends []editBackend
	log      *slog.Logger
}

// NewEditor constructs an Editor. Either client may be nil; the suffix
// fallback is always appended as the terminal backend.
func NewEditor(gemini, openai llm.Client, log *slog.Logger) *Editor {
	var backends []editBackend
	if gemini != nil {
		backends = append(backends, &llmEditBackend{name: "gemini", client: gemini})
	}
	if openai != nil {
		backends = append(backends, &llmEditBackend{name: "openai", client: openai})
	}
	backends = append(backends, suffixEditBackend{})
	return &Editor{backends: backends, log: log}
}

// ApplyEdit returns a full replacement plan for the given instruction.
// It never fails and never mutates the input.
func (e *Editor) ApplyEdit(ctx context.Context, message string, current plan.Plan) plan.Plan {
	for _, b := range e.backends {
		updated, err := b.Edit(ctx, message, current)
		if err != nil {
			e.log.Warn("edit backend failed, trying next", "backend", b.Name(), "err", err)
			continue
		}
		metrics.PlanEdits.WithLabelValues(b.Name()).Inc()
		return updated
	}
	// Unreachable: the suffix backend never errors. Kept as a hard floor.
	metrics.PlanEdits.WithLabelValues("suffix").Inc()
	return appendEditedSuffix(current)
}

// llmEditBackend delegates the edit to an external completion client and
// expects the full updated plan JSON back.
type llmEditBackend struct {
	name   string
	client llm.Client
}

func (b *llmEditBackend) Name() string { return b.name }

func (b *llmEditBackend) Edit(ctx context.Context, message string, current plan.Plan) (plan.Plan, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return plan.Plan{}, err
	}

	prompt := strings.Join([]string{
		"Given this current plan JSON:",
		string(currentJSON),
		"Apply this user request and return ONLY the full updated plan JSON (no markdown, no explanation):",
		message,
	}, "\n")

	text, err := b.client.Complete(ctx, editSystemPrompt, prompt)
	if err != nil {
		return plan.Plan{}, err
	}

	var updated plan.Plan
	if err := json.Unmarshal([]byte(stripFences(text)), &updated); err != nil {
		return plan.Plan{}, err
	}
	return updated, nil
}

// suffixEditBackend is the deterministic terminal fallback: it marks every
// day's summary as edited and touches nothing else.
type suffixEditBackend struct{}

func (suffixEditBackend) Name() string { return "suffix" }

func (suffixEditBackend) Edit(_ context.Context, _ string, current plan.Plan) (plan.Plan, error) {
	return appendEditedSuffix(current), nil
}

func appendEditedSuffix(current plan.Plan) plan.Plan {
	updated := current
	updated.Days = make([]plan.DayPlan, len(current.Days))
	for i, d := range current.Days {
		d.Summary += " (edited)"
		updated.Days[i] = d
	}
	return updated
}

// Package planner produces and edits itinerary plans. Both entry points are
// total: every external failure is absorbed into the deterministic fallback,
// so callers always receive a usable plan.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tripforge/tripforge/internal/llm"
	"github.com/tripforge/tripforge/internal/metrics"
	"github.com/tripforge/tripforge/internal/plan"
)

const generateSystemPrompt = "You are a travel planner that returns concise JSON only."

// Generator builds plans via an external completion client, falling back to
// the deterministic builder whenever the client is missing or misbehaves.
type Generator struct {
	client llm.Client // nil when no generative backend is configured
	log    *slog.Logger
}

// NewGenerator constructs a Generator. A nil client is valid and routes every
// request straight to the deterministic builder.
func NewGenerator(client llm.Client, log *slog.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// GeneratePlan returns a plan for the request. It never returns an error:
// the deterministic builder is the terminal fallback for every failure mode.
func (g *Generator) GeneratePlan(ctx context.Context, req plan.TripRequest) plan.Plan {
	if g.client == nil {
		metrics.PlansGenerated.WithLabelValues("fallback").Inc()
		return plan.BuildPlan(req)
	}

	text, err := g.client.Complete(ctx, generateSystemPrompt, buildGeneratePrompt(req))
	if err != nil {
		g.log.Warn("generative plan failed, using fallback", "destination", req.Destination, "err", err)
		metrics.PlansGenerated.WithLabelValues("fallback").Inc()
		return plan.BuildPlan(req)
	}

	var p plan.Plan
	if err := json.Unmarshal([]byte(stripFences(text)), &p); err != nil {
		g.log.Warn("generative plan unparseable, using fallback", "destination", req.Destination, "err", err)
		metrics.PlansGenerated.WithLabelValues("fallback").Inc()
		return plan.BuildPlan(req)
	}
	if len(p.Days) == 0 {
		g.log.Warn("generative plan has no days, using fallback", "destination", req.Destination)
		metrics.PlansGenerated.WithLabelValues("fallback").Inc()
		return plan.BuildPlan(req)
	}

	metrics.PlansGenerated.WithLabelValues("generative").Inc()
	return p
}

// buildGeneratePrompt instructs the model to emit a plan document matching
// the persisted JSON schema exactly.
func buildGeneratePrompt(req plan.TripRequest) string {
	return strings.Join([]string{
		"You are an expert trip planner.",
		"Create a detailed, day-by-day itinerary in ENGLISH for the trip below.",
		"Inputs:",
		"Destination: " + req.Destination,
		fmt.Sprintf("Duration: %d days", req.DurationDays),
		"Interests: " + strings.Join(req.Interests, ", "),
		"Budget: " + req.Budget,
		"Requirements:",
		"- For EACH day (from morning to evening), suggest concrete activities and places.",
		"- Tailor all choices to the interests and budget.",
		"- Add a short explanatory note for each attraction and restaurant (why it fits).",
		"- Include transport guidance for the day (how to move between sites).",
		"Output JSON ONLY (no markdown). Use EXACTLY this schema:",
		"{",
		`  "destination": string,`,
		`  "budget": string,`,
		`  "durationDays": number,`,
		`  "interests": string[],`,
		`  "days": [`,
		"    {",
		`      "day": number,`,
		`      "title": string,`,
		`      "summary": string,`,
		`      "morning": string,`,
		`      "afternoon": string,`,
		`      "evening": string,`,
		`      "attractions": [ { "name": string, "type": string, "neighborhood": string, "notes": string } ],`,
		`      "restaurants": [ { "name": string, "cuisine": string, "notes": string } ],`,
		`      "transport": string`,
		"    }",
		"  ]",
		"}",
		"Return compact minified JSON.",
	}, "\n")
}

// stripFences removes markdown code-fence wrapping from a completion.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

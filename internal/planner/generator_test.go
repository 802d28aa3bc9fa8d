package planner_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/tripforge/internal/plan"
	"github.com/tripforge/tripforge/internal/planner"
)

// ---- mock completion client ----

type mockClient struct {
	completeFn func(ctx context.Context, system, prompt string) (string, error)
}

func (m *mockClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	return m.completeFn(ctx, system, prompt)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() plan.TripRequest {
	return plan.TripRequest{
		Destination:  "Rome",
		Budget:       "Moderate",
		DurationDays: 3,
		Interests:    []string{"History", "Food"},
	}
}

func richPlanJSON(t *testing.T) string {
	t.Helper()
	p := plan.Plan{
		Destination:  "Rome",
		Budget:       "Moderate",
		DurationDays: 3,
		Interests:    []string{"History", "Food"},
		Days: []plan.DayPlan{
			{Day: 1, Title: "Ancient Rome", Summary: "Forum and Colosseum"},
			{Day: 2, Title: "Food day", Summary: "Testaccio market"},
			{Day: 3, Title: "Vatican", Summary: "Museums"},
		},
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return string(b)
}

// ---- GeneratePlan ----

func TestGeneratePlan_NoClient_UsesFallback(t *testing.T) {
	g := planner.NewGenerator(nil, testLogger())
	req := sampleRequest()

	got := g.GeneratePlan(context.Background(), req)
	want := plan.BuildPlan(req)

	assert.Equal(t, want, got, "unconfigured generator must match the deterministic builder exactly")
}

func TestGeneratePlan_ClientSuccess(t *testing.T) {
	client := &mockClient{
		completeFn: func(_ context.Context, system, prompt string) (string, error) {
			assert.Contains(t, prompt, "Destination: Rome")
			assert.Contains(t, prompt, "Duration: 3 days")
			assert.Contains(t, prompt, "Interests: History, Food")
			return richPlanJSON(t), nil
		},
	}

	g := planner.NewGenerator(client, testLogger())
	got := g.GeneratePlan(context.Background(), sampleRequest())

	require.Len(t, got.Days, 3)
	assert.Equal(t, "Ancient Rome", got.Days[0].Title)
}

func TestGeneratePlan_FencedJSONAccepted(t *testing.T) {
	client := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "```json\n" + richPlanJSON(t) + "\n```", nil
		},
	}

	g := planner.NewGenerator(client, testLogger())
	got := g.GeneratePlan(context.Background(), sampleRequest())

	require.Len(t, got.Days, 3)
}

func TestGeneratePlan_ClientError_UsesFallback(t *testing.T) {
	client := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "", fmt.Errorf("connection refused")
		},
	}

	g := planner.NewGenerator(client, testLogger())
	req := sampleRequest()

	got := g.GeneratePlan(context.Background(), req)
	assert.Equal(t, plan.BuildPlan(req), got)
}

func TestGeneratePlan_NonJSON_UsesFallback(t *testing.T) {
	client := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "Sorry, I cannot help with that.", nil
		},
	}

	g := planner.NewGenerator(client, testLogger())
	req := sampleRequest()

	got := g.GeneratePlan(context.Background(), req)
	assert.Equal(t, plan.BuildPlan(req), got)
}

func TestGeneratePlan_EmptyDays_UsesFallback(t *testing.T) {
	client := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return `{"destination":"Rome","days":[]}`, nil
		},
	}

	g := planner.NewGenerator(client, testLogger())
	req := sampleRequest()

	got := g.GeneratePlan(context.Background(), req)
	assert.Equal(t, plan.BuildPlan(req), got)
	require.Len(t, got.Days, req.DurationDays)
}

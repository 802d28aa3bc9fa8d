package planner_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/tripforge/internal/plan"
	"github.com/tripforge/tripforge/internal/planner"
)

func currentPlan() plan.Plan {
	return plan.Plan{
		Destination:  "Rome",
		Budget:       "Moderate",
		DurationDays: 2,
		Interests:    []string{"History"},
		Days: []plan.DayPlan{
			{Day: 1, Title: "Day 1", Summary: "Forum walk", Morning: "Forum", Transport: "Walk"},
			{Day: 2, Title: "Day 2", Summary: "", Afternoon: "Museum"},
		},
	}
}

func TestApplyEdit_FirstBackendWins(t *testing.T) {
	gemini := &mockClient{
		completeFn: func(_ context.Context, _, prompt string) (string, error) {
			assert.Contains(t, prompt, "Forum walk")
			assert.Contains(t, prompt, "make day 2 about food")
			return `{"destination":"Rome","durationDays":2,"days":[{"day":1,"summary":"Forum walk"},{"day":2,"summary":"Food tour"}]}`, nil
		},
	}
	openai := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			t.Fatal("second backend must not be called when the first succeeds")
			return "", nil
		},
	}

	e := planner.NewEditor(gemini, openai, testLogger())
	got := e.ApplyEdit(context.Background(), "make day 2 about food", currentPlan())

	require.Len(t, got.Days, 2)
	assert.Equal(t, "Food tour", got.Days[1].Summary)
}

func TestApplyEdit_FallsThroughToSecondBackend(t *testing.T) {
	gemini := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "", fmt.Errorf("quota exceeded")
		},
	}
	openai := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "```json\n{\"destination\":\"Rome\",\"days\":[{\"day\":1,\"summary\":\"Updated\"}]}\n```", nil
		},
	}

	e := planner.NewEditor(gemini, openai, testLogger())
	got := e.ApplyEdit(context.Background(), "shorten it", currentPlan())

	require.Len(t, got.Days, 1)
	assert.Equal(t, "Updated", got.Days[0].Summary)
}

func TestApplyEdit_AllBackendsFail_SuffixFallback(t *testing.T) {
	failing := &mockClient{
		completeFn: func(_ context.Context, _, _ string) (string, error) {
			return "not json at all", nil
		},
	}

	e := planner.NewEditor(failing, failing, testLogger())
	current := currentPlan()
	got := e.ApplyEdit(context.Background(), "anything", current)

	require.Len(t, got.Days, len(current.Days))
	assert.Equal(t, "Forum walk (edited)", got.Days[0].Summary)
	// Missing summary is treated as empty before appending.
	assert.Equal(t, " (edited)", got.Days[1].Summary)
	// Every other field is untouched.
	assert.Equal(t, current.Days[0].Morning, got.Days[0].Morning)
	assert.Equal(t, current.Days[0].Transport, got.Days[0].Transport)
	assert.Equal(t, current.Days[1].Afternoon, got.Days[1].Afternoon)
	assert.Equal(t, current.Destination, got.Destination)
}

func TestApplyEdit_NoBackendsConfigured_SuffixFallback(t *testing.T) {
	e := planner.NewEditor(nil, nil, testLogger())
	current := currentPlan()
	got := e.ApplyEdit(context.Background(), "anything", current)

	require.Len(t, got.Days, len(current.Days))
	for i := range got.Days {
		assert.Equal(t, current.Days[i].Summary+" (edited)", got.Days[i].Summary)
	}
}

func TestApplyEdit_DoesNotMutateInput(t *testing.T) {
	e := planner.NewEditor(nil, nil, testLogger())
	current := currentPlan()

	_ = e.ApplyEdit(context.Background(), "anything", current)

	assert.Equal(t, "Forum walk", current.Days[0].Summary, "caller's plan must be left intact")
}

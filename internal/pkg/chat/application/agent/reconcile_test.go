package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePrefersDirectList(t *testing.T) {
	res := &Result{
		ToolCalls: []ToolCallRecord{
			{Tool: "add_task", Args: map[string]any{"title": "x"}, Result: map[string]any{"status": "created"}},
		},
		Trace: []TraceItem{
			{Kind: TraceFunctionCall, Tool: "list_tasks"},
		},
	}

	records := Normalize(res)

	require.Len(t, records, 1)
	require.Equal(t, "add_task", records[0].Tool)
}

func TestNormalizeFillsNilMaps(t *testing.T) {
	res := &Result{ToolCalls: []ToolCallRecord{{Tool: "list_tasks"}}}

	records := Normalize(res)

	require.NotNil(t, records[0].Args)
	require.NotNil(t, records[0].Result)
}

func TestNormalizeScansTrace(t *testing.T) {
	res := &Result{
		Trace: []TraceItem{
			{Kind: TraceFunctionCall, Tool: "add_task", Args: map[string]any{"title": "x"}},
			{Kind: TraceFunctionOutput, Tool: "add_task", Output: map[string]any{"status": "created"}},
		},
	}

	records := Normalize(res)

	require.Len(t, records, 1)
	require.Equal(t, "add_task", records[0].Tool)
	require.Equal(t, map[string]any{"title": "x"}, records[0].Args)
	require.Equal(t, map[string]any{"status": "created"}, records[0].Result)
}

func TestNormalizePairsOutputWithMostRecentUnmatched(t *testing.T) {
	res := &Result{
		Trace: []TraceItem{
			{Kind: TraceFunctionCall, Tool: "add_task"},
			{Kind: TraceFunctionCall, Tool: "list_tasks"},
			{Kind: TraceFunctionOutput, Output: map[string]any{"from": "list"}},
			{Kind: TraceFunctionOutput, Output: map[string]any{"from": "add"}},
		},
	}

	records := Normalize(res)

	require.Len(t, records, 2)
	require.Equal(t, map[string]any{"from": "add"}, records[0].Result)
	require.Equal(t, map[string]any{"from": "list"}, records[1].Result)
}

func TestNormalizeOrphanOutputIgnored(t *testing.T) {
	res := &Result{
		Trace: []TraceItem{
			{Kind: TraceFunctionOutput, Output: map[string]any{"stray": true}},
		},
	}

	require.Empty(t, Normalize(res))
}

func TestNormalizeNilResult(t *testing.T) {
	require.Nil(t, Normalize(nil))
}

func TestReconcileTrustsReportedCalls(t *testing.T) {
	res := &Result{
		ToolCalls: []ToolCallRecord{{Tool: "delete_task", Args: map[string]any{}, Result: map[string]any{}}},
	}

	// Count moved, but reported calls win; nothing is synthesized
	records := Reconcile(res, 3, 2)

	require.Len(t, records, 1)
	require.Equal(t, "delete_task", records[0].Tool)
}

func TestReconcileSynthesizesOnCountDelta(t *testing.T) {
	records := Reconcile(&Result{Output: "added it"}, 2, 3)

	require.Len(t, records, 1)
	rec := records[0]
	require.Equal(t, ToolChangeDetected, rec.Tool)
	require.Equal(t, map[string]any{
		"change_type":  "unknown",
		"before_count": 2,
		"after_count":  3,
	}, rec.Args)
	require.Equal(t, map[string]any{"message": "Task state changed"}, rec.Result)
}

func TestReconcileNoCallsNoDelta(t *testing.T) {
	require.Empty(t, Reconcile(&Result{Output: "hi"}, 2, 2))
}

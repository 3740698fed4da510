package agent

// Normalize extracts the tool calls of an engine run. A directly
// reported list wins; otherwise the raw trace is scanned, pairing each
// output with the most recent invocation that has none yet.
func Normalize(res *Result) []ToolCallRecord {
	if res == nil {
		return nil
	}
	if len(res.ToolCalls) > 0 {
		records := make([]ToolCallRecord, len(res.ToolCalls))
		copy(records, res.ToolCalls)
		for i := range records {
			if records[i].Args == nil {
				records[i].Args = map[string]any{}
			}
			if records[i].Result == nil {
				records[i].Result = map[string]any{}
			}
		}
		return records
	}

	var records []ToolCallRecord
	unmatched := -1
	for _, item := range res.Trace {
		switch item.Kind {
		case TraceFunctionCall:
			args := item.Args
			if args == nil {
				args = map[string]any{}
			}
			records = append(records, ToolCallRecord{
				Tool:   item.Tool,
				Args:   args,
				Result: map[string]any{},
			})
			unmatched = len(records) - 1
		case TraceFunctionOutput:
			if unmatched >= 0 {
				if item.Output != nil {
					records[unmatched].Result = item.Output
				}
				unmatched = prevUnmatched(records, unmatched)
			}
		}
	}
	return records
}

// prevUnmatched finds the latest record before i that still has an empty
// result, so interleaved outputs land on the right invocation.
func prevUnmatched(records []ToolCallRecord, i int) int {
	for j := i - 1; j >= 0; j-- {
		if len(records[j].Result) == 0 {
			return j
		}
	}
	return -1
}

// Reconcile returns the turn's tool calls, synthesizing a single
// task_change_detected record when task state changed but the run
// reported no calls. A non-empty list is trusted as-is.
func Reconcile(res *Result, beforeCount, afterCount int) []ToolCallRecord {
	records := Normalize(res)
	if len(records) > 0 || beforeCount == afterCount {
		return records
	}
	return []ToolCallRecord{{
		Tool: ToolChangeDetected,
		Args: map[string]any{
			"change_type":  "unknown",
			"before_count": beforeCount,
			"after_count":  afterCount,
		},
		Result: map[string]any{"message": "Task state changed"},
	}}
}

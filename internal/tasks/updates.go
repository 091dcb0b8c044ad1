package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	RefreshItems Phase = iota
	RefreshDone
	SearchQuery
)

func (p Phase) String() string {
	switch p {
	case RefreshItems:
		return "refresh_items"
	case RefreshDone:
		return "refresh_done"
	case SearchQuery:
		return "search_query"
	default:
		return ""
	}
}

func refreshStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshItems,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Refreshing %d wishlisted movies...", total),
	}
}

func refreshItemUpdate(step, total int, res RefreshItemResult) ProgressUpdate {
	mark := "✓"
	if !res.Fresh {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   RefreshItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, res.Movie.Title),
		Data:    res,
	}
}

func refreshDoneUpdate(result *RefreshResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshDone,
		Step:    len(result.Movies),
		Total:   len(result.Movies),
		Message: fmt.Sprintf("Refreshed %d movies (%d from cache)", result.FreshCount, result.FailedCount),
		Data:    result,
	}
}

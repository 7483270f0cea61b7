// Package schedule computes reminder suggestions for a batch. No storage
// access; output is a pure function of the inputs.
package schedule

import (
	"fmt"
	"time"

	"fermentlog-backend/domain/model"
)

// Suggestion is a candidate reminder offset from the batch start date.
type Suggestion struct {
	ScheduledTime time.Time `json:"scheduledTime"`
	Message       string    `json:"message"`
}

// Suggest returns the candidate reminders for a batch: an early check 24
// hours in, a mid-point check, and a completion reminder at the target
// duration. Suggestions whose offset exceeds the target duration are
// dropped, so short ferments yield fewer entries.
func Suggest(stage model.Stage, startDate time.Time, targetDurationHours int) []Suggestion {
	if targetDurationHours <= 0 {
		return nil
	}

	target := time.Duration(targetDurationHours) * time.Hour
	var suggestions []Suggestion

	if target > 24*time.Hour {
		suggestions = append(suggestions, Suggestion{
			ScheduledTime: startDate.Add(24 * time.Hour),
			Message:       fmt.Sprintf("Check on your %s fermentation", stage),
		})
		suggestions = append(suggestions, Suggestion{
			ScheduledTime: startDate.Add(target / 2),
			Message:       "Taste and check progress",
		})
	}

	suggestions = append(suggestions, Suggestion{
		ScheduledTime: startDate.Add(target),
		Message:       completionMessage(stage),
	})

	return suggestions
}

func completionMessage(stage model.Stage) string {
	if stage == model.StageSecondary {
		return "Second ferment complete - refrigerate your batch"
	}
	return "Primary fermentation complete - start second ferment or bottle"
}

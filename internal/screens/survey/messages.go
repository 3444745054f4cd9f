package survey

import (
	sv "github.com/abhisek/survey/internal/survey"
)

// formLoadedMsg is sent when the question set has been fetched. Form is
// empty when loading failed.
type formLoadedMsg struct {
	Form *sv.Form
}

// submitDoneMsg is sent when the submit request completes. Err has already
// been logged.
type submitDoneMsg struct {
	Err error
}

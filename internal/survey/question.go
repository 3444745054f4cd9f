package survey

import "slices"

// Question is one survey item with its options and current selection.
type Question struct {
	ID             int
	Text           string
	Options        []string
	SelectedOption string // "" means unanswered
}

// Answered reports whether an option has been selected.
func (q Question) Answered() bool {
	return q.SelectedOption != ""
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	return slices.Contains(q.Options, opt)
}

// Item is the wire shape of a question returned by the backend.
type Item struct {
	Questions      string   `json:"questions"`
	Answers        []string `json:"answers"`
	SelectedAnswer string   `json:"selectedAnswer"`
}

// FromItems maps backend items to questions with 1-based IDs in load order.
// A preselected answer that is not among the options is cleared; the IDs of
// those questions are returned in dropped.
func FromItems(items []Item) (questions []Question, dropped []int) {
	questions = make([]Question, 0, len(items))
	for i, it := range items {
		q := Question{
			ID:             i + 1,
			Text:           it.Questions,
			Options:        slices.Clone(it.Answers),
			SelectedOption: it.SelectedAnswer,
		}
		if q.SelectedOption != "" && !q.HasOption(q.SelectedOption) {
			q.SelectedOption = ""
			dropped = append(dropped, q.ID)
		}
		questions = append(questions, q)
	}
	return questions, dropped
}

package survey

import "strings"

const (
	// DefaultPageSize is the number of questions shown per page.
	DefaultPageSize = 5

	// DefaultPages is the fixed page count the members survey ships with.
	DefaultPages = 4

	// ResultSeparator joins answers in the submitted result string.
	ResultSeparator = ","
)

// Form is the paginated state of a survey being answered.
//
// Questions are never mutated in place: Select swaps in a new slice, so a
// slice returned by Questions stays valid as a snapshot.
type Form struct {
	questions []Question
	page      int
	pageSize  int
	pages     int // 0 derives from len(questions)
}

// NewForm creates a form on page 0. pageSize < 1 falls back to
// DefaultPageSize; pages < 1 derives the page count from the data.
func NewForm(questions []Question, pageSize, pages int) *Form {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pages < 0 {
		pages = 0
	}
	return &Form{
		questions: questions,
		pageSize:  pageSize,
		pages:     pages,
	}
}

// Snapshot returns a copy of the form. Later selections on f replace
// its question slice, so the copy does not observe them.
func (f *Form) Snapshot() *Form {
	c := *f
	return &c
}

// Questions returns the current question list. Callers must not modify it.
func (f *Form) Questions() []Question {
	return f.questions
}

// Len returns the number of loaded questions.
func (f *Form) Len() int {
	return len(f.questions)
}

// Page returns the zero-based current page index.
func (f *Form) Page() int {
	return f.page
}

// PageSize returns the number of questions per page.
func (f *Form) PageSize() int {
	return f.pageSize
}

// TotalPages returns the fixed page count, or ceil(len/pageSize) with a
// minimum of 1 when the count is derived.
func (f *Form) TotalPages() int {
	if f.pages > 0 {
		return f.pages
	}
	n := (len(f.questions) + f.pageSize - 1) / f.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// PageQuestions returns the slice of questions on the current page. Pages
// past the end of the data are empty.
func (f *Form) PageQuestions() []Question {
	start := f.page * f.pageSize
	if start >= len(f.questions) {
		return nil
	}
	end := min(start+f.pageSize, len(f.questions))
	return f.questions[start:end]
}

// PageComplete reports whether every question on the current page is
// answered. An empty page is complete.
func (f *Form) PageComplete() bool {
	return allAnswered(f.PageQuestions())
}

// AllAnswered reports whether every loaded question is answered.
func (f *Form) AllAnswered() bool {
	return allAnswered(f.questions)
}

// Answered returns how many questions have a selection.
func (f *Form) Answered() int {
	n := 0
	for _, q := range f.questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// IsLastPage reports whether the current page is the final one.
func (f *Form) IsLastPage() bool {
	return f.page >= f.TotalPages()-1
}

// ShowNext reports whether the "Next" control is offered.
func (f *Form) ShowNext() bool {
	return !f.IsLastPage()
}

// CanAdvance reports whether "Next" is enabled.
func (f *Form) CanAdvance() bool {
	return f.ShowNext() && f.PageComplete()
}

// ShowSubmit reports whether the "Submit" control is offered.
func (f *Form) ShowSubmit() bool {
	return f.IsLastPage()
}

// CanSubmit reports whether "Submit" is enabled.
func (f *Form) CanSubmit() bool {
	return f.ShowSubmit() && f.AllAnswered()
}

// NextPage moves to the following page. It is a no-op on the last page and
// reports whether the page changed.
func (f *Form) NextPage() bool {
	if f.IsLastPage() {
		return false
	}
	f.page++
	return true
}

// Question looks up a question by ID.
func (f *Form) Question(id int) (Question, bool) {
	for _, q := range f.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Select records option as the answer to question id. Unknown IDs and
// options outside the question's option list are ignored. It reports
// whether a question was updated.
func (f *Form) Select(id int, option string) bool {
	q, ok := f.Question(id)
	if !ok || !q.HasOption(option) {
		return false
	}

	updated := make([]Question, len(f.questions))
	for i, q := range f.questions {
		if q.ID == id {
			q.SelectedOption = option
		}
		updated[i] = q
	}
	f.questions = updated
	return true
}

// Result joins every selected option in list order.
func (f *Form) Result() string {
	answers := make([]string, len(f.questions))
	for i, q := range f.questions {
		answers[i] = q.SelectedOption
	}
	return strings.Join(answers, ResultSeparator)
}

func allAnswered(qs []Question) bool {
	for _, q := range qs {
		if !q.Answered() {
			return false
		}
	}
	return true
}

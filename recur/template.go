package recur

// =============================================================================
// REPEAT TEMPLATE - Caller-owned aggregate the engine advances
// =============================================================================

// RepeatTemplate bundles a pattern with its stop condition and progress
// cursor. The engine never stores one; the caller reads a template from its
// own persistence layer, advances it one tick at a time, and writes the
// updated cursor back atomically with whatever instance it materializes.
//
// Invariants the caller must preserve between ticks:
//   - CurrentDate >= Pattern.Start, and it only moves forward
//   - RepeatedTimes <= RepeatTimes whenever EndMode is FOR_TIMES
//   - the same template is never advanced concurrently from two workers
type RepeatTemplate struct {
	ID          string
	Name        string
	Description string
	Tags        []string

	Pattern Pattern

	EndMode       RepeatEndMode
	RepeatTimes   int  // FOR_TIMES payload
	RepeatEndDate Date // TO_DATE payload

	CurrentDate   Date // last date considered
	RepeatedTimes int  // occurrences emitted so far
	Status        TemplateStatus
}

// NewTemplate validates the pattern and end condition and returns a template
// with its cursor positioned at the start date, ready for the first tick.
func NewTemplate(id string, p Pattern, end RepeatEndMode, opts ...TemplateOption) (RepeatTemplate, error) {
	t := RepeatTemplate{
		ID:          id,
		Pattern:     p,
		EndMode:     end,
		CurrentDate: p.Start,
		Status:      StatusActive,
	}
	for _, opt := range opts {
		opt(&t)
	}
	if err := t.Validate(); err != nil {
		return RepeatTemplate{}, err
	}
	return t, nil
}

// TemplateOption configures optional template fields at construction.
type TemplateOption func(*RepeatTemplate)

// ForTimes sets a FOR_TIMES occurrence budget.
func ForTimes(n int) TemplateOption {
	return func(t *RepeatTemplate) { t.RepeatTimes = n }
}

// ToDate sets a TO_DATE end boundary (inclusive).
func ToDate(d Date) TemplateOption {
	return func(t *RepeatTemplate) { t.RepeatEndDate = d }
}

// Named sets the display name.
func Named(name string) TemplateOption {
	return func(t *RepeatTemplate) { t.Name = name }
}

func (t RepeatTemplate) Validate() error {
	if err := t.Pattern.Validate(); err != nil {
		return err
	}
	mode := t.Pattern.Config.Mode()
	if !t.EndMode.Valid() {
		return validationErr(mode, "repeatEndMode", "is unknown")
	}
	switch t.EndMode {
	case EndForTimes:
		if t.RepeatTimes <= 0 {
			return validationErr(mode, "repeatTimes", "must be positive")
		}
	case EndToDate:
		if t.RepeatEndDate.IsZero() {
			return validationErr(mode, "repeatEndDate", "is required")
		}
		if t.RepeatEndDate.Before(t.Pattern.Start) {
			return validationErr(mode, "repeatEndDate", "must not precede repeatStartDate")
		}
	}
	if t.CurrentDate.Before(t.Pattern.Start) {
		return validationErr(mode, "currentDate", "must not precede repeatStartDate")
	}
	return nil
}

// ShouldStop evaluates the stop condition against the given candidate date.
// TO_DATE is checked after the candidate is computed, not before: a pattern
// whose final occurrence lands exactly on the end date still fires.
func (t RepeatTemplate) ShouldStop(candidate Date) bool {
	switch t.EndMode {
	case EndForTimes:
		return t.RepeatedTimes >= t.RepeatTimes
	case EndToDate:
		return candidate.After(t.RepeatEndDate)
	default:
		return false
	}
}

// next computes the candidate occurrence for the next tick. The very first
// tick may return the start date itself; afterwards the search is strictly
// after the cursor.
func (t RepeatTemplate) next(g *Generator) (Date, error) {
	if t.RepeatedTimes == 0 && t.CurrentDate.Equal(t.Pattern.Start) {
		return g.First(t.Pattern)
	}
	return g.Next(t.Pattern, t.CurrentDate)
}

// Advance performs one tick as a pure transition: compute the candidate,
// evaluate the stop condition with it, and either emit (returning the
// updated template and the occurrence) or stop (stopped=true, template
// unchanged except that a one-shot NONE template is marked done).
//
// The caller must apply the returned template atomically with the instance
// it creates from the occurrence, and must serialize Advance per template.
func (t RepeatTemplate) Advance(g *Generator) (RepeatTemplate, Date, bool, error) {
	// A one-shot template has nothing further to generate; searching would
	// only run out the horizon.
	if _, oneShot := t.Pattern.Config.(None); oneShot && t.RepeatedTimes > 0 {
		return t, Date{}, true, nil
	}

	candidate, err := t.next(g)
	if err != nil {
		return t, Date{}, false, err
	}
	if t.ShouldStop(candidate) {
		return t, Date{}, true, nil
	}

	t.CurrentDate = candidate
	t.RepeatedTimes++
	return t, candidate, false, nil
}

package recur

// =============================================================================
// OCCURRENCE GENERATOR - Bounded forward search
// =============================================================================

// DefaultHorizon caps every occurrence search at roughly ten years of days.
// A pattern with no match inside the horizon is treated as a configuration
// problem and surfaced as ErrPatternExhausted, never as an endless loop.
const DefaultHorizon = 3660

// Generator finds occurrence dates for patterns. The zero value is usable:
// no holiday knowledge (plain weekday oracle) and the default horizon.
//
// Generators hold no mutable state; one instance may serve any number of
// goroutines and templates concurrently.
type Generator struct {
	Oracle  CalendarOracle
	Horizon int // max days scanned per call; DefaultHorizon when <= 0
}

func (g *Generator) oracle() CalendarOracle {
	if g.Oracle == nil {
		return WeekdayOracle{}
	}
	return g.Oracle
}

func (g *Generator) horizon() int {
	if g.Horizon <= 0 {
		return DefaultHorizon
	}
	return g.Horizon
}

// Next returns the earliest date strictly after `after` that satisfies the
// pattern. The search steps day by day; closed-form jumps would only be an
// optimization and the predicate stays the source of truth.
func (g *Generator) Next(p Pattern, after Date) (Date, error) {
	if err := p.Validate(); err != nil {
		return Date{}, err
	}
	oracle := g.oracle()
	horizon := g.horizon()

	candidate := after.AddDays(1)
	if candidate.Before(p.Start) {
		candidate = p.Start
	}
	for i := 0; i < horizon; i++ {
		if p.Matches(candidate, oracle) {
			return candidate, nil
		}
		candidate = candidate.AddDays(1)
	}
	return Date{}, &PatternExhaustedError{After: after, Horizon: horizon}
}

// First returns the pattern's first occurrence on or after its start date.
func (g *Generator) First(p Pattern) (Date, error) {
	return g.Next(p, p.Start.AddDays(-1))
}

// Range returns a lazy iterator over every occurrence in [from, to]. The
// iteration is bounded by the range, not by an element count, so callers can
// render a month at a time without the engine precomputing history. Calling
// Range again restarts from scratch.
func (g *Generator) Range(p Pattern, from, to Date) (*RangeIterator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := from
	if start.Before(p.Start) {
		start = p.Start
	}
	return &RangeIterator{
		pattern: p,
		oracle:  g.oracle(),
		cursor:  start,
		to:      to,
	}, nil
}

// RangeIterator walks matching dates day by day within a closed range.
type RangeIterator struct {
	pattern Pattern
	oracle  CalendarOracle
	cursor  Date
	to      Date
	done    bool
}

// Next yields the next occurrence, or false when the range is exhausted.
func (it *RangeIterator) Next() (Date, bool) {
	for !it.done {
		d := it.cursor
		if d.After(it.to) {
			it.done = true
			break
		}
		it.cursor = d.AddDays(1)
		if it.pattern.Matches(d, it.oracle) {
			return d, true
		}
	}
	return Date{}, false
}

// Collect drains the iterator into a slice, for callers that want the whole
// window at once.
func (it *RangeIterator) Collect() []Date {
	var dates []Date
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		dates = append(dates, d)
	}
	return dates
}

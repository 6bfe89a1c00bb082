/*
provisioner.go - The tick loop that turns patterns into occurrence rows

PURPOSE:
  Implements the caller side of the engine's contract: read a template,
  ask the engine for the next candidate date, and persist the advanced
  cursor atomically with the materialized occurrence.

DESIGN:
  - The engine stays pure; every side effect goes through TemplateStore
  - One tick is one occurrence; CatchUp ticks until a boundary date
  - Callers must not run two provisioners over the same template

SEE ALSO:
  - recur/template.go: the Advance transition this loop drives
  - store.go: the atomic-advance contract
*/
package habits

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warp/habit-engine/recur"
)

// Provisioner advances templates through a store.
type Provisioner struct {
	Templates TemplateStore
	Generator *recur.Generator
}

func NewProvisioner(store TemplateStore, gen *recur.Generator) *Provisioner {
	if gen == nil {
		gen = &recur.Generator{}
	}
	return &Provisioner{Templates: store, Generator: gen}
}

// Tick advances one template by a single occurrence. stopped=true means the
// template's end condition was reached and nothing was emitted.
func (p *Provisioner) Tick(ctx context.Context, templateID string) (Occurrence, bool, error) {
	t, err := p.Templates.Template(ctx, templateID)
	if err != nil {
		return Occurrence{}, false, err
	}
	if t.Status != recur.StatusActive {
		return Occurrence{}, true, nil
	}

	updated, date, stopped, err := t.Advance(p.Generator)
	if err != nil {
		return Occurrence{}, false, fmt.Errorf("advance template %s: %w", templateID, err)
	}
	if stopped {
		return Occurrence{}, true, nil
	}

	occ := Occurrence{ID: uuid.NewString(), TemplateID: t.ID, Date: date}
	if err := p.Templates.AdvanceCursor(ctx, updated, occ); err != nil {
		return Occurrence{}, false, err
	}
	return occ, false, nil
}

// CatchUp emits every due occurrence up to and including the boundary date,
// e.g. "materialize everything through today" after downtime. Each emission
// is persisted individually, so a failure leaves all prior ticks durable.
func (p *Provisioner) CatchUp(ctx context.Context, templateID string, until recur.Date) ([]Occurrence, error) {
	t, err := p.Templates.Template(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if t.Status != recur.StatusActive {
		return nil, nil
	}

	var emitted []Occurrence
	for {
		updated, date, stopped, err := t.Advance(p.Generator)
		if err != nil {
			return emitted, fmt.Errorf("advance template %s: %w", templateID, err)
		}
		if stopped || date.After(until) {
			return emitted, nil
		}

		occ := Occurrence{ID: uuid.NewString(), TemplateID: t.ID, Date: date}
		if err := p.Templates.AdvanceCursor(ctx, updated, occ); err != nil {
			return emitted, err
		}
		emitted = append(emitted, occ)
		t = updated
	}
}

// Preview returns the dates the template would produce in [from, to] without
// touching any store, for calendar rendering.
func (p *Provisioner) Preview(t recur.RepeatTemplate, from, to recur.Date) ([]recur.Date, error) {
	it, err := p.Generator.Range(t.Pattern, from, to)
	if err != nil {
		return nil, err
	}
	return it.Collect(), nil
}

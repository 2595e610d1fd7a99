// Package schedule aggregates bar records into a bending schedule and lays
// the schedule out as a grid of cells.
package schedule

import (
	"math"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// recordKey is the identity used to coalesce duplicate registrations.
type recordKey struct {
	element  string
	diameter float64
	grade    string
	length   float64
	quantity int
	anchorX  float64
	anchorY  float64
}

func keyOf(r model.BarRecord) recordKey {
	return recordKey{
		element:  r.Element,
		diameter: r.Diameter,
		grade:    r.Grade,
		length:   r.Length,
		quantity: r.Quantity,
		anchorX:  math.Round(r.Anchor.X*1000) / 1000,
		anchorY:  math.Round(r.Anchor.Y*1000) / 1000,
	}
}

// Registry is an append-only, insertion-ordered list of bar records.
type Registry struct {
	records []model.BarRecord
	index   map[recordKey]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[recordKey]int{}}
}

// Register numbers rec by insertion order and stores it. Registering a
// record identical to an earlier one returns the earlier record unchanged.
func (r *Registry) Register(rec model.BarRecord) model.BarRecord {
	k := keyOf(rec)
	if i, ok := r.index[k]; ok {
		return r.records[i]
	}
	rec.Number = len(r.records) + 1
	r.index[k] = len(r.records)
	r.records = append(r.records, rec)
	return rec
}

// Snapshot returns a copy of the registered records in number order.
func (r *Registry) Snapshot() []model.BarRecord {
	out := make([]model.BarRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of distinct records.
func (r *Registry) Len() int {
	return len(r.records)
}

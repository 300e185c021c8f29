// Package vector implements the coefficient vector view: scalar get/set
// access to a single coefficient inside a packed coefficient-vector buffer.
// Packing is field-specific (spec.md §4.2), so the view is a thin wrapper
// that delegates to the field implementation rather than assuming any
// particular byte layout.
package vector

import "github.com/rolandomar/kodo/field"

// View reads and writes coefficients inside vectors over a fixed field.
// It holds no per-vector state — the same View works against any vector
// produced for that field.
type View struct {
	f field.Field
}

// New returns a coefficient vector view over f.
func New(f field.Field) View {
	return View{f: f}
}

// Field returns the field this view packs coefficients for.
func (v View) Field() field.Field {
	return v.f
}

// Length returns the packed byte length of a vector holding count
// coefficients.
func (v View) Length(count int) int {
	return v.f.VectorLength(count)
}

// Coefficient extracts the coefficient at index i.
func (v View) Coefficient(i int, vec []byte) uint32 {
	return v.f.Coefficient(vec, i)
}

// SetCoefficient stores value as the coefficient at index i.
func (v View) SetCoefficient(i int, vec []byte, value uint32) {
	v.f.SetCoefficient(vec, i, value)
}

// SetBasis zeroes vec and sets it to the standard basis vector e_i.
func (v View) SetBasis(vec []byte, i int) {
	for j := range vec {
		vec[j] = 0
	}
	v.f.SetCoefficient(vec, i, 1)
}

package posmap

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Mapping collects the step maps of a multi-step transform into a single
// pipeline that positions can be mapped through, abstracting away which
// steps sit between the two document versions.
//
// A Mapping can also carry mirror links between its steps. When a step pair
// is mirrored, a position deleted by one half (say, the delete half of a
// delete-then-reinsert edit) is recovered through the other half instead of
// collapsing to the deletion boundary.
//
// The zero value is an empty mapping, ready for use.
type Mapping struct {
	// steps holds the step maps, in application order. from and to bound
	// the window [from, to) this mapping actually maps through; Slice
	// narrows the window while sharing the backing list.
	steps  []*StepMap
	mirror map[int]int
	from   int
	to     int
}

// NewMapping creates a mapping over the given step maps.
func NewMapping(steps ...*StepMap) *Mapping {
	return &Mapping{steps: steps, to: len(steps)}
}

// Maps returns the step maps in this mapping's window. The returned slice
// shares backing storage with the mapping and must not be modified.
func (mp *Mapping) Maps() []*StepMap {
	return mp.steps[mp.from:mp.to]
}

// Slice returns a mapping that maps through only the steps in [from, to),
// indexed into the full step list. The backing storage is shared; append to
// the source only via Copy while a slice is outstanding.
func (mp *Mapping) Slice(from, to int) *Mapping {
	return &Mapping{steps: mp.steps, mirror: mp.mirror, from: from, to: to}
}

// Copy returns a mapping with its own step list and mirror table, so that
// future appends leave the original untouched. The step maps themselves are
// shared; they are immutable.
func (mp *Mapping) Copy() *Mapping {
	c := &Mapping{steps: slices.Clone(mp.steps), from: mp.from, to: mp.to}
	if mp.mirror != nil {
		c.mirror = maps.Clone(mp.mirror)
	}
	return c
}

// AppendMap adds a step map to the end of this mapping.
func (mp *Mapping) AppendMap(m *StepMap) {
	mp.steps = append(mp.steps, m)
	mp.to = len(mp.steps)
}

// AppendMirroredMap adds a step map that is the mirror image of the step at
// index mirrorOf.
func (mp *Mapping) AppendMirroredMap(m *StepMap, mirrorOf int) {
	mp.AppendMap(m)
	mp.SetMirror(len(mp.steps)-1, mirrorOf)
}

// GetMirror returns the index of the step map that mirrors the one at the
// given index, if any. Lookup is symmetric: it finds the partner no matter
// which of the pair was named first when the link was registered.
func (mp *Mapping) GetMirror(n int) (int, bool) {
	m, ok := mp.mirror[n]
	return m, ok
}

// SetMirror registers the step maps at indexes n and m as each other's
// mirrors.
func (mp *Mapping) SetMirror(n, m int) {
	if mp.mirror == nil {
		mp.mirror = make(map[int]int)
	}
	mp.mirror[n] = m
	mp.mirror[m] = n
}

// AppendMapping appends all of another mapping's step maps to this one,
// rewiring mirror links into the combined index space. A link whose partner
// would land at or past the step being appended is dropped rather than
// wired to a not-yet-appended entry.
func (mp *Mapping) AppendMapping(other *Mapping) {
	startSize := len(mp.steps)
	for i := 0; i < len(other.steps); i++ {
		if mirr, ok := other.GetMirror(i); ok && mirr < i {
			mp.AppendMirroredMap(other.steps[i], startSize+mirr)
		} else {
			mp.AppendMap(other.steps[i])
		}
	}
}

// AppendMappingInverted appends the inverse of another mapping: its step
// maps in reverse order, each inverted, with mirror links rewired into the
// reversed index space.
func (mp *Mapping) AppendMappingInverted(other *Mapping) {
	totalSize := len(mp.steps) + len(other.steps)
	for i := len(other.steps) - 1; i >= 0; i-- {
		if mirr, ok := other.GetMirror(i); ok && mirr > i {
			mp.AppendMirroredMap(other.steps[i].Invert(), totalSize-mirr-1)
		} else {
			mp.AppendMap(other.steps[i].Invert())
		}
	}
}

// Invert returns a fresh mapping that undoes this one: every step inverted,
// in reverse order, with mirror pairing preserved.
func (mp *Mapping) Invert() *Mapping {
	inverse := NewMapping()
	inverse.AppendMappingInverted(mp)
	return inverse
}

// Map maps a position through this mapping.
func (mp *Mapping) Map(pos, assoc int) int {
	if len(mp.mirror) > 0 {
		// A plain fold would collapse positions deleted by one half of a
		// mirrored pair; the metadata path recovers them.
		return mp.mapThrough(pos, assoc).Pos
	}
	for i := mp.from; i < mp.to; i++ {
		pos = mp.steps[i].Map(pos, assoc)
	}
	return pos
}

// MapResult maps a position through this mapping, with information about
// deleted content around it. The deletion flags of every step are combined;
// the result never carries a recover token.
func (mp *Mapping) MapResult(pos, assoc int) MapResult {
	return mp.mapThrough(pos, assoc)
}

func (mp *Mapping) mapThrough(pos, assoc int) MapResult {
	var delInfo DelInfo
	for i := mp.from; i < mp.to; i++ {
		result := mp.steps[i].MapResult(pos, assoc)
		if result.Recover != nil {
			if corr, ok := mp.GetMirror(i); ok && corr > i && corr < mp.to {
				// The recovered position is already in the coordinate
				// space after the partner step, so resume past it.
				pos = mp.steps[corr].Recover(*result.Recover)
				i = corr
				continue
			}
		}
		delInfo |= result.DelInfo
		pos = result.Pos
	}
	return MapResult{Pos: pos, DelInfo: delInfo}
}

// String returns a string representation of this mapping's window.
func (mp *Mapping) String() string {
	parts := make([]string, 0, mp.to-mp.from)
	for _, m := range mp.Maps() {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("Mapping(%s)", strings.Join(parts, ", "))
}

var _ Mappable = (*Mapping)(nil)

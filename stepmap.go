package posmap

import "fmt"

// Assoc values bias which side a position sticks to when content is
// inserted or replaced exactly at that position.
const (
	// AssocBefore associates the position with the content before it.
	AssocBefore = -1

	// AssocAfter associates the position with the content after it.
	AssocAfter = 1
)

// Mappable is implemented by objects that positions can be mapped through.
type Mappable interface {
	// Map maps a position through this object. assoc (AssocBefore or
	// AssocAfter) determines which side the position is associated with,
	// and so which direction it moves when content is inserted at the
	// mapped position.
	Map(pos, assoc int) int

	// MapResult maps a position and returns additional information about
	// the mapping. The result's Deleted method tells you whether the
	// position was removed along with its surroundings. When content on
	// only one side was deleted, the position counts as deleted only when
	// assoc points toward the deleted side.
	MapResult(pos, assoc int) MapResult
}

// StepMap records the deletions and insertions made by a single edit step
// as a sorted list of replaced ranges. It can be used to find the
// correspondence between positions before and after the step.
//
// A StepMap is immutable. It may be shared freely, including between
// multiple Mappings and through mirror links.
type StepMap struct {
	// ranges holds (start, oldSize, newSize) triples, flattened, sorted by
	// start. For an inverted map the stored starts are in the post-step
	// coordinate space and oldSize/newSize swap roles on every access; the
	// table itself is never rewritten.
	ranges   []int
	inverted bool
}

// emptyStepMap backs EmptyStepMap so the shared-instance guarantee holds
// even if a consumer reassigns the exported variable.
var emptyStepMap = &StepMap{}

// EmptyStepMap is the identity mapping. NewStepMap returns it for empty
// range tables, so every empty step map is the same instance. It must not
// be reassigned.
var EmptyStepMap = emptyStepMap

// NewStepMap creates a step map from a flattened list of replaced ranges,
// each a group of three numbers (start, oldSize, newSize) sorted by start.
// It panics if the slice length is not a multiple of three.
func NewStepMap(ranges []int) *StepMap {
	if len(ranges)%3 != 0 {
		panic(fmt.Sprintf("posmap: range table of length %d is not made of (start, oldSize, newSize) triples", len(ranges)))
	}
	if len(ranges) == 0 {
		return emptyStepMap
	}
	return &StepMap{ranges: ranges}
}

// Map maps a position through this step map.
func (m *StepMap) Map(pos, assoc int) int {
	return m.mapPos(pos, assoc, true).Pos
}

// MapResult maps a position through this step map, with information about
// deleted content around it. The Recover field of the result is set when
// the position fell inside a replaced range's deleted content.
func (m *StepMap) MapResult(pos, assoc int) MapResult {
	return m.mapPos(pos, assoc, false)
}

// mapPos is the shared scan behind Map and MapResult. In simple mode the
// deletion flags and recover token are skipped.
func (m *StepMap) mapPos(pos, assoc int, simple bool) MapResult {
	diff := 0
	oldIndex, newIndex := 1, 2
	if m.inverted {
		oldIndex, newIndex = 2, 1
	}
	for i := 0; i < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if m.inverted {
			// Stored starts are post-step coordinates; bring them into
			// the query space before comparing.
			start -= diff
		}
		if start > pos {
			break
		}
		oldSize := m.ranges[i+oldIndex]
		newSize := m.ranges[i+newIndex]
		end := start + oldSize
		if pos <= end {
			var side int
			switch {
			case oldSize == 0:
				side = assoc
			case pos == start:
				side = -1
			case pos == end:
				side = 1
			default:
				side = assoc
			}
			result := start + diff
			if side >= 0 {
				result += newSize
			}
			if simple {
				return MapResult{Pos: result}
			}
			// The boundary matching the bias is the one position inside
			// [start, end] that is not considered deleted from that side.
			boundary := end
			if assoc < 0 {
				boundary = start
			}
			var del DelInfo
			switch {
			case pos == start:
				del = DelAfter
			case pos == end:
				del = DelBefore
			default:
				del = DelAcross
			}
			var rec *RecoverValue
			if pos != boundary {
				del |= DelSide
				rec = &RecoverValue{index: i / 3, offset: pos - start}
			}
			return MapResult{Pos: result, DelInfo: del, Recover: rec}
		}
		diff += newSize - oldSize
	}
	return MapResult{Pos: pos + diff}
}

// Recover reconstructs the position encoded in a recover token produced by
// MapResult, expressed in this map's post-step coordinate space. It is
// meant to be called on the mirror partner of the map that produced the
// token.
func (m *StepMap) Recover(value RecoverValue) int {
	diff := 0
	if !m.inverted {
		for i := 0; i < value.index; i++ {
			diff += m.ranges[i*3+2] - m.ranges[i*3+1]
		}
	}
	return m.ranges[value.index*3] + diff + value.offset
}

// Touches reports whether the position is within the replaced range the
// recover token points at.
func (m *StepMap) Touches(pos int, value RecoverValue) bool {
	diff := 0
	oldIndex, newIndex := 1, 2
	if m.inverted {
		oldIndex, newIndex = 2, 1
	}
	for i := 0; i < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if m.inverted {
			start -= diff
		}
		if start > pos {
			break
		}
		oldSize := m.ranges[i+oldIndex]
		end := start + oldSize
		if pos <= end && i == value.index*3 {
			return true
		}
		diff += m.ranges[i+newIndex] - oldSize
	}
	return false
}

// ForEach calls fn for every replaced range in the map, passing the range's
// extent in the pre-step document (oldStart, oldEnd) and in the post-step
// document (newStart, newEnd), adjusted for the map's direction.
func (m *StepMap) ForEach(fn func(oldStart, oldEnd, newStart, newEnd int)) {
	oldIndex, newIndex := 1, 2
	if m.inverted {
		oldIndex, newIndex = 2, 1
	}
	diff := 0
	for i := 0; i < len(m.ranges); i += 3 {
		start := m.ranges[i]
		oldStart, newStart := start, start
		if m.inverted {
			oldStart -= diff
		} else {
			newStart += diff
		}
		oldSize := m.ranges[i+oldIndex]
		newSize := m.ranges[i+newIndex]
		fn(oldStart, oldStart+oldSize, newStart, newStart+newSize)
		diff += newSize - oldSize
	}
}

// Invert returns a step map that maps positions in the post-step document
// back to the pre-step document. The range table is shared, not copied.
func (m *StepMap) Invert() *StepMap {
	if len(m.ranges) == 0 {
		return m
	}
	return &StepMap{ranges: m.ranges, inverted: !m.inverted}
}

// String returns a string representation of this step map.
func (m *StepMap) String() string {
	prefix := ""
	if m.inverted {
		prefix = "-"
	}
	return fmt.Sprintf("%s%v", prefix, m.ranges)
}

var _ Mappable = (*StepMap)(nil)

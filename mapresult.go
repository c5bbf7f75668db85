package posmap

import "strings"

// DelInfo is a bitmask describing how a mapped position relates to content
// deleted during the mapping.
type DelInfo uint8

const (
	// DelBefore indicates content was deleted directly before the position.
	DelBefore DelInfo = 1 << iota

	// DelAfter indicates content was deleted directly after the position.
	DelAfter

	// DelAcross indicates the position was entirely enclosed in a deleted
	// range.
	DelAcross

	// DelSide indicates the position is considered deleted: the content on
	// the side the query's assoc bias points toward was removed.
	DelSide
)

// String returns a human-readable representation of the flags.
func (d DelInfo) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	if d&DelBefore != 0 {
		parts = append(parts, "before")
	}
	if d&DelAfter != 0 {
		parts = append(parts, "after")
	}
	if d&DelAcross != 0 {
		parts = append(parts, "across")
	}
	if d&DelSide != 0 {
		parts = append(parts, "side")
	}
	return strings.Join(parts, "|")
}

// RecoverValue identifies the replaced range a mapped position fell into and
// the position's offset inside that range's deleted content. It is an opaque
// token: its only use is passing it back to Recover or Touches on a step map
// derived from the one that produced it.
type RecoverValue struct {
	index  int
	offset int
}

// MapResult is the result of mapping a position, with information about
// deleted content around it.
type MapResult struct {
	// Pos is the mapped position.
	Pos int

	// DelInfo classifies how deleted content relates to the position.
	DelInfo DelInfo

	// Recover is set when the position fell inside a replaced range's
	// deleted content and did not coincide with the boundary selected by
	// the query's assoc bias. It is nil for results produced by a Mapping.
	Recover *RecoverValue
}

// Deleted reports whether the position was deleted: the content on the side
// the query's assoc bias points toward was removed from the document.
func (r MapResult) Deleted() bool {
	return r.DelInfo&DelSide != 0
}

// DeletedBefore reports whether content before the position was deleted.
func (r MapResult) DeletedBefore() bool {
	return r.DelInfo&(DelBefore|DelAcross) != 0
}

// DeletedAfter reports whether content after the position was deleted.
func (r MapResult) DeletedAfter() bool {
	return r.DelInfo&(DelAfter|DelAcross) != 0
}

// DeletedAcross reports whether the position was entirely enclosed in a
// deleted range.
func (r MapResult) DeletedAcross() bool {
	return r.DelInfo&DelAcross != 0
}

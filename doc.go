// Package posmap tracks how integer positions in a flat document shift as
// edits are applied.
//
// Editor components hold on to positions: cursors, selection endpoints,
// decoration anchors, pending operations from other sources. When the
// document changes under them, those positions need to be moved to the
// coordinates that refer to the same content in the new document, without
// re-scanning the document itself. This package does that bookkeeping as
// pure integer math over descriptions of what each edit removed and
// inserted.
//
// The package handles:
//
//   - Per-step position mapping with StepMap
//   - Multi-step transforms with Mapping
//   - Boundary bias control via the assoc parameter
//   - Deletion classification and recovery through MapResult
//   - Mirror pairs, so positions deleted by one half of a paired edit
//     (such as a delete-then-reinsert) survive mapping through the pair
//
// Step Maps:
//
// A StepMap describes one edit step as a sorted list of replaced ranges,
// each a (start, oldSize, newSize) triple. Mapping a position walks the
// ranges, shifting the position by the accumulated size change of every
// range before it. A position inside a replaced range resolves to one of
// the range's sides, controlled by the assoc bias.
//
// Mappings:
//
// A Mapping is an append-only pipeline of step maps representing a whole
// transform. Mapping a position folds it through every step. When two
// steps are registered as mirrors of each other, a position deleted by one
// step is recovered through its partner instead of collapsing to the
// deletion boundary, which is what makes undo round-trips come out right.
//
// Basic usage:
//
//	// One step: replace two units at offset 5 with four new ones.
//	m := posmap.NewStepMap([]int{5, 2, 4})
//	m.Map(3, posmap.AssocAfter)  // 3, before the edit
//	m.Map(10, posmap.AssocAfter) // 12, shifted by the growth
//
//	// A transform with a mirrored delete/reinsert pair.
//	var mp posmap.Mapping
//	mp.AppendMap(del)
//	mp.AppendMirroredMap(ins, 0)
//	mp.Map(pos, posmap.AssocAfter)
//
// Thread Safety:
//
// StepMap values are immutable after construction and can be freely shared
// across goroutines, including between multiple Mappings. A Mapping is not
// safe for concurrent use while it is being appended to; once built it can
// be read from any number of goroutines. Slice shares backing storage with
// its source, so use Copy before appending when slices are outstanding.
package posmap

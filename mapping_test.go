package posmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyMapping(t *testing.T) {
	t.Run("zero value is an identity mapping", func(t *testing.T) {
		var mp Mapping
		for _, assoc := range []int{AssocBefore, AssocAfter} {
			assert.Equal(t, 7, mp.Map(7, assoc))
		}
		r := mp.MapResult(7, AssocAfter)
		assert.Equal(t, 7, r.Pos)
		assert.Equal(t, DelInfo(0), r.DelInfo)
		assert.Nil(t, r.Recover)
	})

	t.Run("constructor", func(t *testing.T) {
		mp := NewMapping()
		assert.Equal(t, 0, mp.Map(0, AssocAfter))
		assert.Empty(t, mp.Maps())
	})
}

// TestMappingFold checks that mapping through a chain equals mapping through
// each step in turn.
func TestMappingFold(t *testing.T) {
	insert := NewStepMap([]int{2, 0, 3})
	del := NewStepMap([]int{8, 2, 0})
	mp := NewMapping(insert, del)

	for _, assoc := range []int{AssocBefore, AssocAfter} {
		for pos := 0; pos <= 12; pos++ {
			want := del.Map(insert.Map(pos, assoc), assoc)
			assert.Equal(t, want, mp.Map(pos, assoc), "pos %d assoc %d", pos, assoc)
		}
	}
}

func TestMappingAppendMapping(t *testing.T) {
	t.Run("composition matches sequential mapping", func(t *testing.T) {
		chainA := NewMapping(NewStepMap([]int{2, 0, 3}))
		chainB := NewMapping(NewStepMap([]int{8, 2, 0}))

		combined := chainA.Copy()
		combined.AppendMapping(chainB)

		for pos := 0; pos <= 12; pos++ {
			want := chainB.Map(chainA.Map(pos, AssocAfter), AssocAfter)
			assert.Equal(t, want, combined.Map(pos, AssocAfter), "pos %d", pos)
		}
	})

	t.Run("mirror links are remapped into the combined space", func(t *testing.T) {
		del := NewStepMap([]int{2, 4, 0})
		ins := NewStepMap([]int{2, 0, 4})

		paired := NewMapping()
		paired.AppendMap(del)
		paired.AppendMirroredMap(ins, 0)

		base := NewMapping(NewStepMap([]int{0, 0, 1}))
		base.AppendMapping(paired)

		corr, ok := base.GetMirror(1)
		require.True(t, ok)
		assert.Equal(t, 2, corr)
		corr, ok = base.GetMirror(2)
		require.True(t, ok)
		assert.Equal(t, 1, corr)
		_, ok = base.GetMirror(0)
		assert.False(t, ok)

		// Position 4 shifts to 5 through the leading insert, then survives
		// the mirrored delete/reinsert pair at its original offset.
		assert.Equal(t, 5, base.Map(4, AssocAfter))
	})
}

func TestMirrorRegistry(t *testing.T) {
	mp := NewMapping(EmptyStepMap, EmptyStepMap, EmptyStepMap)

	_, ok := mp.GetMirror(0)
	assert.False(t, ok)

	mp.SetMirror(0, 2)

	// Lookup works from both ends of the pair.
	corr, ok := mp.GetMirror(0)
	require.True(t, ok)
	assert.Equal(t, 2, corr)
	corr, ok = mp.GetMirror(2)
	require.True(t, ok)
	assert.Equal(t, 0, corr)
}

// TestMirrorRecovery exercises the delete-then-reinsert scenario: a position
// inside the deleted span must be reconstructed through the mirror instead of
// collapsing to the deletion boundary.
func TestMirrorRecovery(t *testing.T) {
	del := NewStepMap([]int{2, 4, 0})
	ins := NewStepMap([]int{2, 0, 4})

	t.Run("without mirrors the position collapses", func(t *testing.T) {
		mp := NewMapping(del, ins)
		assert.Equal(t, 2, mp.Map(4, AssocBefore))
		assert.Equal(t, 6, mp.Map(4, AssocAfter))
		assert.True(t, mp.MapResult(4, AssocAfter).Deleted())
	})

	t.Run("with mirrors the position is recovered", func(t *testing.T) {
		mp := NewMapping()
		mp.AppendMap(del)
		mp.AppendMirroredMap(ins, 0)

		for _, assoc := range []int{AssocBefore, AssocAfter} {
			assert.Equal(t, 4, mp.Map(4, assoc))
		}

		// The recovered position was not lost, so it does not count as
		// deleted, and chain results never expose a recover token.
		r := mp.MapResult(4, AssocAfter)
		assert.Equal(t, 4, r.Pos)
		assert.False(t, r.Deleted())
		assert.Nil(t, r.Recover)
	})

	t.Run("mirror outside the window is ignored", func(t *testing.T) {
		mp := NewMapping()
		mp.AppendMap(del)
		mp.AppendMirroredMap(ins, 0)

		// Only the delete half is in view, so the position collapses.
		assert.Equal(t, 2, mp.Slice(0, 1).Map(4, AssocBefore))
	})
}

func TestMappingInvert(t *testing.T) {
	del := NewStepMap([]int{2, 4, 0})
	ins := NewStepMap([]int{2, 0, 4})
	mp := NewMapping()
	mp.AppendMap(del)
	mp.AppendMirroredMap(ins, 0)

	inv := mp.Invert()

	t.Run("mirrors are rewired", func(t *testing.T) {
		corr, ok := inv.GetMirror(0)
		require.True(t, ok)
		assert.Equal(t, 1, corr)
	})

	t.Run("round trip outside deleted content", func(t *testing.T) {
		for _, p := range []int{0, 1, 8, 20} {
			assert.Equal(t, p, inv.Map(mp.Map(p, AssocAfter), AssocBefore), "pos %d", p)
		}
	})

	t.Run("round trip through the mirrored pair", func(t *testing.T) {
		// Deleted-and-reinserted positions survive both directions.
		assert.Equal(t, 4, mp.Map(4, AssocAfter))
		assert.Equal(t, 4, inv.Map(4, AssocAfter))
	})

	t.Run("inversion is a fresh chain", func(t *testing.T) {
		inv.AppendMap(EmptyStepMap)
		assert.Len(t, mp.Maps(), 2)
	})
}

func TestMappingSlice(t *testing.T) {
	m0 := NewStepMap([]int{0, 0, 5})
	m1 := NewStepMap([]int{10, 2, 4})
	m2 := NewStepMap([]int{0, 3, 0})
	mp := NewMapping(m0, m1, m2)

	t.Run("slice maps through only its window", func(t *testing.T) {
		s := mp.Slice(1, 2)
		for pos := 0; pos <= 14; pos++ {
			assert.Equal(t, m1.Map(pos, AssocAfter), s.Map(pos, AssocAfter), "pos %d", pos)
		}
		assert.Equal(t, []*StepMap{m1}, s.Maps())
	})

	t.Run("slice shares backing storage", func(t *testing.T) {
		s := mp.Slice(0, 2)
		assert.Same(t, mp.steps[0], s.steps[0])
	})
}

func TestMappingCopy(t *testing.T) {
	mp := NewMapping(NewStepMap([]int{2, 4, 0}))
	mp.AppendMirroredMap(NewStepMap([]int{2, 0, 4}), 0)

	c := mp.Copy()
	c.AppendMap(NewStepMap([]int{0, 0, 7}))
	c.SetMirror(2, 0)

	// Appends and mirror registrations on the copy leave the original alone.
	assert.Len(t, mp.Maps(), 2)
	assert.Len(t, c.Maps(), 3)
	corr, ok := mp.GetMirror(0)
	require.True(t, ok)
	assert.Equal(t, 1, corr)

	// The step maps themselves are shared.
	assert.Same(t, mp.steps[0], c.steps[0])
}

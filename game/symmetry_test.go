package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allActions() []Action {
	actions := append([]Action{}, Directions[:]...)
	for _, cell := range blankBoard.Cells() {
		actions = append(actions, Place(cell))
	}
	return actions
}

func TestSymmetricAction(t *testing.T) {
	t.Run("applying a kind twice is the identity", func(t *testing.T) {
		for _, kind := range Kinds {
			for _, a := range allActions() {
				once, err := SymmetricAction(a, kind)
				require.NoError(t, err)
				twice, err := SymmetricAction(once, kind)
				require.NoError(t, err)
				require.Equal(t, a, twice, "%v under %v", a, kind)
			}
		}
	})

	t.Run("each kind permutes the directions", func(t *testing.T) {
		for _, kind := range Kinds {
			seen := map[Action]bool{}
			for _, a := range Directions {
				image, err := SymmetricAction(a, kind)
				require.NoError(t, err)
				require.False(t, image.IsPlacement())
				seen[image] = true
			}
			require.Len(t, seen, len(Directions), "%v should be a permutation", kind)
		}
	})

	t.Run("mirrored steps match mirrored offsets", func(t *testing.T) {
		for _, a := range Directions {
			s := steps[a]
			lr, _ := SymmetricAction(a, MirrorLR)
			ud, _ := SymmetricAction(a, MirrorUD)
			both, _ := SymmetricAction(a, MirrorBoth)
			require.Equal(t, step{s.rows, -s.cols}, steps[lr])
			require.Equal(t, step{-s.rows, s.cols}, steps[ud])
			require.Equal(t, step{-s.rows, -s.cols}, steps[both])
		}
	})

	t.Run("unknown kind fails loudly", func(t *testing.T) {
		_, err := SymmetricAction(NNE, Symmetry(7))
		require.ErrorIs(t, err, ErrInvalidSymmetry)
	})
}

func TestSymmetricPosition(t *testing.T) {
	t.Run("applying a kind twice is the identity", func(t *testing.T) {
		for _, kind := range Kinds {
			for _, cell := range blankBoard.Cells() {
				once, err := SymmetricPosition(cell, kind)
				require.NoError(t, err)
				require.True(t, OnBoard(once), "%d under %v should stay on the board", cell, kind)
				twice, _ := SymmetricPosition(once, kind)
				require.Equal(t, cell, twice)
			}
		}
	})

	t.Run("corners map to corners", func(t *testing.T) {
		lr, _ := SymmetricPosition(At(0, 1), MirrorLR)
		ud, _ := SymmetricPosition(At(0, 1), MirrorUD)
		both, _ := SymmetricPosition(At(0, 1), MirrorBoth)
		require.Equal(t, At(0, Width), lr)
		require.Equal(t, At(Height-1, 1), ud)
		require.Equal(t, At(Height-1, Width), both)
	})

	t.Run("unplaced stays unplaced", func(t *testing.T) {
		got, err := SymmetricPosition(NoPosition, MirrorBoth)
		require.NoError(t, err)
		require.Equal(t, NoPosition, got)
	})

	t.Run("unknown kind fails loudly", func(t *testing.T) {
		_, err := SymmetricPosition(At(0, 1), Symmetry(-1))
		require.ErrorIs(t, err, ErrInvalidSymmetry)
	})
}

func TestSymmetries(t *testing.T) {
	s := New().Play(Place(At(1, 2))).Play(Place(At(5, 9))).Play(NNE)

	t.Run("images reflect the board and both players", func(t *testing.T) {
		images := Symmetries(s)
		require.Len(t, images, 3)
		for i, image := range images {
			require.Equal(t, Kinds[i], image.Kind)
			require.Equal(t, s.PlyCount(), image.State.PlyCount())
			require.Equal(t, s.board.Count(), image.State.board.Count())
			for p := range s.locs {
				want, _ := SymmetricPosition(s.locs[p], image.Kind)
				require.Equal(t, want, image.State.locs[p])
			}
			back, err := Reflect(image.State, image.Kind)
			require.NoError(t, err)
			require.Equal(t, s, back, "Reflecting twice should restore the state")
		}
	})

	t.Run("playing commutes with reflecting", func(t *testing.T) {
		for _, image := range Symmetries(s) {
			for _, a := range s.Actions() {
				mapped, err := SymmetricAction(a, image.Kind)
				require.NoError(t, err)
				want, _ := Reflect(s.Play(a), image.Kind)
				require.Equal(t, want, image.State.Play(mapped))
			}
		}
	})

	t.Run("reflecting with an unknown kind fails", func(t *testing.T) {
		_, err := Reflect(s, Symmetry(3))
		require.ErrorIs(t, err, ErrInvalidSymmetry)
	})
}

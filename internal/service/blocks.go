package service

import (
	"sort"

	"go-cms-app/internal/data"
)

// Block ordering operations. Within one page the block positions always form
// a contiguous 1..N sequence; these functions are the only legal mutators of
// that sequence. All of them are pure: the input slice is never modified and
// a new slice is returned.

// InsertBlock appends a block to the end of the sequence, assigning it the
// next position.
func InsertBlock(blocks []data.Block, b data.Block) []data.Block {
	out := cloneBlocks(blocks)
	b.Position = len(out) + 1
	return append(out, b)
}

// EditBlock replaces the content of the block at the given position, leaving
// the ordering untouched. It returns data.ErrNotFound when no block holds
// that position; the sequence is returned unchanged in that case.
func EditBlock(blocks []data.Block, position int, content string) ([]data.Block, error) {
	out := cloneBlocks(blocks)
	for i := range out {
		if out[i].Position == position {
			out[i].Content = content
			return out, nil
		}
	}
	return out, data.ErrNotFound
}

// MoveBlockUp swaps the block at the given position with its predecessor.
// It is a no-op at the top of the sequence or when the position is absent.
func MoveBlockUp(blocks []data.Block, position int) []data.Block {
	if position <= 1 {
		return cloneBlocks(blocks)
	}
	return swapBlocks(blocks, position, position-1)
}

// MoveBlockDown swaps the block at the given position with its successor.
// It is a no-op at the bottom of the sequence or when the position is absent.
func MoveBlockDown(blocks []data.Block, position int) []data.Block {
	if position >= len(blocks) {
		return cloneBlocks(blocks)
	}
	return swapBlocks(blocks, position, position+1)
}

// RemoveBlock deletes the block at the given position and closes the gap:
// every block that sat below it moves up by one, restoring a contiguous
// 1..N-1 sequence. Removing an absent position is a no-op.
func RemoveBlock(blocks []data.Block, position int) []data.Block {
	out := make([]data.Block, 0, len(blocks))
	found := false
	for _, b := range blocks {
		if b.Position == position {
			found = true
			continue
		}
		if b.Position > position {
			b.Position--
		}
		out = append(out, b)
	}
	if !found {
		return cloneBlocks(blocks)
	}
	return out
}

// SortBlocks returns the sequence ordered by position.
func SortBlocks(blocks []data.Block) []data.Block {
	out := cloneBlocks(blocks)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// CheckPositions reports whether the positions form a contiguous permutation
// of 1..N, with no gaps and no duplicates. Input that fails this check came
// from outside the ordering operations and must be rejected.
func CheckPositions(blocks []data.Block) bool {
	seen := make([]bool, len(blocks))
	for _, b := range blocks {
		if b.Position < 1 || b.Position > len(blocks) || seen[b.Position-1] {
			return false
		}
		seen[b.Position-1] = true
	}
	return true
}

func swapBlocks(blocks []data.Block, a, b int) []data.Block {
	out := cloneBlocks(blocks)
	ai, bi := -1, -1
	for i := range out {
		switch out[i].Position {
		case a:
			ai = i
		case b:
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return out
	}
	out[ai].Position, out[bi].Position = b, a
	return SortBlocks(out)
}

func cloneBlocks(blocks []data.Block) []data.Block {
	out := make([]data.Block, len(blocks))
	copy(out, blocks)
	return out
}

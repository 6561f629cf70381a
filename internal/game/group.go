package game

import (
	"github.com/tomz197/invaders/internal/object"
)

// updateGroup updates every member of a sprite group and drops the ones that
// ask to be removed, returning pooled objects to their pool.
func updateGroup[T object.Object](items []T, ctx object.UpdateContext) ([]T, error) {
	kept := items[:0]
	for _, it := range items {
		remove, err := it.Update(ctx)
		if err != nil {
			return kept, err
		}
		if remove {
			object.ReleaseObject(it)
			continue
		}
		kept = append(kept, it)
	}
	clear(items[len(kept):])
	return kept, nil
}

// compact drops destroyed members of a group in place.
func compact[T object.Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// drawGroup draws every member of a sprite group.
func drawGroup[T object.Object](items []T, ctx object.DrawContext) error {
	for _, it := range items {
		if err := it.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

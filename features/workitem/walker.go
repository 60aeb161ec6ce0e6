// Package workitem walks parent-child linked work item trees for bulk delete
// and update sweeps.
package workitem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrCycle reports a revisited id during discovery. The hierarchy is a tree;
// a cycle is a structural error, not a shape to descend into.
var ErrCycle = errors.New("hierarchy cycle detected")

// API is the capability surface the walker needs from the backing store.
type API interface {
	Children(ctx context.Context, id int) ([]int, error)
	Delete(ctx context.Context, id int) error
	Update(ctx context.Context, id int, field, value string) error
}

type Walker struct {
	api API
}

func NewWalker(api API) *Walker {
	return &Walker{api: api}
}

// discover returns root plus every descendant in depth-first preorder, using
// an explicit stack so a deep tree cannot exhaust the call stack.
func (w *Walker) discover(ctx context.Context, root int) ([]int, error) {
	var order []int
	seen := make(map[int]bool)
	stack := []int{root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[id] {
			return nil, fmt.Errorf("%w: work item %d", ErrCycle, id)
		}
		seen[id] = true
		order = append(order, id)

		children, err := w.api.Children(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch children of %d: %w", id, err)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return order, nil
}

// DeleteTree deletes root and all its descendants bottom-up: children strictly
// before their parent, root last, because the store rejects deleting a node
// with a live child link. Node failures are logged and the sweep continues.
func (w *Walker) DeleteTree(ctx context.Context, root int) error {
	order, err := w.discover(ctx, root)
	if err != nil {
		return err
	}

	// Reversed preorder puts every descendant before its parent.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if err := w.api.Delete(ctx, id); err != nil {
			slog.ErrorContext(ctx, "failed to delete work item", "id", id, "error", err)
			continue
		}
		slog.InfoContext(ctx, "deleted work item", "id", id)
	}
	return nil
}

// UpdateTree applies a field update to root first, then to every descendant.
// Sibling order carries no structural dependency for updates. Node failures
// are logged and the sweep continues.
func (w *Walker) UpdateTree(ctx context.Context, root int, field, value string) error {
	order, err := w.discover(ctx, root)
	if err != nil {
		return err
	}

	for _, id := range order {
		if err := w.api.Update(ctx, id, field, value); err != nil {
			slog.ErrorContext(ctx, "failed to update work item", "id", id, "field", field, "error", err)
			continue
		}
		slog.InfoContext(ctx, "updated work item", "id", id, "field", field)
	}
	return nil
}

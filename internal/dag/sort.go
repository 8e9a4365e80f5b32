package dag

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
)

// visit colors for the depth-first traversal.
const (
	unvisited = iota
	visiting
	visited
)

// Sort returns the features in a valid topological order: for every edge
// "A names B" with B registered, B appears before A. Features with no
// dependency relation keep their relative registration order. A dependency
// cycle returns an error naming the features involved.
func Sort(ctx context.Context, entries []*feature.State) ([]*feature.State, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Sorting features by declared dependencies.", "count", len(entries))

	index := make(map[string]int, len(entries))
	for i, st := range entries {
		index[st.Feature.Name()] = i
	}

	// Adjacency list: preds[i] holds the indices feature i depends on.
	// Names that resolve to no registered feature are dropped here; the
	// activation engine decides later whether that is fatal.
	preds := make([][]int, len(entries))
	for i, st := range entries {
		for _, name := range st.Diag.Dependencies {
			j, ok := index[name]
			if !ok {
				logger.Debug("Dropping unresolved dependency name during sort.", "feature", st.Feature.Name(), "dependency", name)
				continue
			}
			preds[i] = append(preds[i], j)
		}
	}

	colors := make([]int, len(entries))
	sorted := make([]*feature.State, 0, len(entries))

	var visit func(i int, stack []string) error
	visit = func(i int, stack []string) error {
		name := entries[i].Feature.Name()
		switch colors[i] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle detected: %s", strings.Join(append(stack, name), " -> "))
		}

		colors[i] = visiting
		for _, p := range preds[i] {
			if err := visit(p, append(stack, name)); err != nil {
				return err
			}
		}
		colors[i] = visited
		sorted = append(sorted, entries[i])
		return nil
	}

	for i := range entries {
		if err := visit(i, nil); err != nil {
			return nil, err
		}
	}

	logger.Debug("Feature sort complete.", "count", len(sorted))
	return sorted, nil
}

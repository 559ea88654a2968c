package compiler

import (
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
)

// topoSort orders one phase's hooks so every hook runs after all of its
// dependencies. It is Kahn's algorithm with a deterministic ready set:
// among hooks whose dependencies are satisfied, the one with the lowest
// priority wins, then the lexicographically smallest ID.
//
// Callers must have validated dependency existence first; an unresolvable
// graph here means a cycle.
func topoSort(phase domain.Phase, hooks []domain.Hook) ([]domain.Hook, error) {
	if len(hooks) == 0 {
		return nil, nil
	}

	byID := make(map[string]domain.Hook, len(hooks))
	indegree := make(map[string]int, len(hooks))
	dependents := make(map[string][]string, len(hooks))
	for _, h := range hooks {
		byID[h.ID] = h
		indegree[h.ID] = len(h.DependsOn)
		for _, dep := range h.DependsOn {
			dependents[dep] = append(dependents[dep], h.ID)
		}
	}

	ready := make([]string, 0, len(hooks))
	for _, h := range hooks {
		if indegree[h.ID] == 0 {
			ready = append(ready, h.ID)
		}
	}

	less := func(a, b string) bool {
		ha, hb := byID[a], byID[b]
		if ha.Priority != hb.Priority {
			return ha.Priority < hb.Priority
		}
		return ha.ID < hb.ID
	}

	out := make([]domain.Hook, 0, len(hooks))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		next := ready[0]
		ready = ready[1:]

		out = append(out, byID[next])
		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(out) != len(hooks) {
		// Everything still carrying an indegree sits on or behind a cycle.
		var stuck []string
		for id, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, &domain.CycleError{Phase: phase, Hooks: stuck}
	}

	return out, nil
}

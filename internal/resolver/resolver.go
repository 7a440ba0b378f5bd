// Package resolver owns the dependency graph of a task collection and
// answers eligibility queries as tasks complete.
package resolver

import (
	"sort"

	"github.com/me/taskplan/pkg/model"
)

// Resolver holds the validated dependency graph for one task collection.
// It is read-only after construction and safe to share across concurrent
// scheduling runs.
type Resolver struct {
	tasks map[string]*model.Task
	ids   []string // sorted task IDs

	// forward[a] = tasks that depend on a; deps[b] = tasks b depends on.
	forward map[string][]string
	deps    map[string][]string
}

// New validates the collection and builds the dependency graph.
//
// Every task is validated individually, every dependency must reference a
// task in the same collection, and the dependency relation must be acyclic.
// Violations surface as *model.InvalidTaskError, *model.UnknownDependencyError,
// or *model.CyclicDependencyError before any scheduling can start.
func New(tasks []*model.Task) (*Resolver, error) {
	r := &Resolver{
		tasks:   make(map[string]*model.Task, len(tasks)),
		forward: make(map[string][]string, len(tasks)),
		deps:    make(map[string][]string, len(tasks)),
	}

	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.tasks[t.ID]; ok {
			return nil, &model.InvalidTaskError{TaskID: t.ID, Reason: "duplicate task id"}
		}
		r.tasks[t.ID] = t
	}

	for id := range r.tasks {
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)

	for _, id := range r.ids {
		t := r.tasks[id]
		for _, dep := range t.DependsOn {
			if _, ok := r.tasks[dep]; !ok {
				return nil, &model.UnknownDependencyError{TaskID: id, DependencyID: dep}
			}
			r.forward[dep] = append(r.forward[dep], id)
			r.deps[id] = append(r.deps[id], dep)
		}
	}

	// Sort adjacency lists for deterministic traversal.
	for k := range r.forward {
		sort.Strings(r.forward[k])
	}
	for k := range r.deps {
		sort.Strings(r.deps[k])
	}

	if cycle := r.detectCycle(); cycle != nil {
		return nil, &model.CyclicDependencyError{Path: cycle}
	}

	return r, nil
}

// detectCycle returns the cycle path if one exists, or nil if the graph is
// acyclic. DFS with coloring: white (unvisited), gray (in progress), black
// (done). A back-edge to a gray node signals the cycle.
func (r *Resolver) detectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(r.tasks))
	parent := make(map[string]string, len(r.tasks))

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range r.forward[node] {
			if color[next] == gray {
				// Reconstruct the cycle back through the parent chain.
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range r.ids {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Eligible returns the tasks whose every dependency is in completed and
// which are not themselves completed, sorted by ID. The set is recomputed
// from scratch on each call so it is correct under any completion order.
func (r *Resolver) Eligible(completed map[string]bool) []*model.Task {
	var out []*model.Task
	for _, id := range r.ids {
		if completed[id] {
			continue
		}
		ready := true
		for _, dep := range r.deps[id] {
			if !completed[dep] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, r.tasks[id])
		}
	}
	return out
}

// Tasks returns all tasks sorted by ID.
func (r *Resolver) Tasks() []*model.Task {
	out := make([]*model.Task, len(r.ids))
	for i, id := range r.ids {
		out[i] = r.tasks[id]
	}
	return out
}

// Task returns the task with the given ID, or nil.
func (r *Resolver) Task(id string) *model.Task {
	return r.tasks[id]
}

// Len returns the number of tasks in the graph.
func (r *Resolver) Len() int {
	return len(r.tasks)
}

// Dependencies returns the direct dependencies of a task, sorted by ID.
func (r *Resolver) Dependencies(id string) []string {
	return r.deps[id]
}

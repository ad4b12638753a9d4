// Package knowledge holds the static concept graph: a DAG of concepts
// with prerequisite edges, per-concept quiz items, and the greedy
// next-concept recommendation over it.
package knowledge

import (
	"fmt"
	"sort"
)

// Graph holds the concept DAG with precomputed indices.
type Graph struct {
	nodes     []Node
	byID      map[string]*Node
	bySubject map[string][]Node
	items     map[string][]QuizItem
	topoOrder []string
}

// NewGraph constructs a Graph from nodes and quiz items, validating that
// prerequisite edges reference known nodes and contain no cycles.
func NewGraph(nodes []Node, items []QuizItem) (*Graph, error) {
	g := &Graph{
		nodes:     nodes,
		byID:      make(map[string]*Node, len(nodes)),
		bySubject: make(map[string][]Node),
		items:     make(map[string][]QuizItem),
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.ID == "" {
			return nil, fmt.Errorf("node %d has empty ID", i)
		}
		if _, dup := g.byID[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node ID %q", n.ID)
		}
		g.byID[n.ID] = n
	}

	for i := range g.nodes {
		n := g.nodes[i]
		for _, p := range n.Prerequisites {
			if _, ok := g.byID[p]; !ok {
				return nil, fmt.Errorf("node %q references unknown prerequisite %q", n.ID, p)
			}
		}
		g.bySubject[n.Subject] = append(g.bySubject[n.Subject], n)
	}

	order, err := topoSort(g.nodes, g.byID)
	if err != nil {
		return nil, err
	}
	g.topoOrder = order

	for _, item := range items {
		if _, ok := g.byID[item.ConceptID]; !ok {
			return nil, fmt.Errorf("quiz item %q references unknown concept %q", item.ID, item.ConceptID)
		}
		if item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Options) {
			return nil, fmt.Errorf("quiz item %q has out-of-range correct index %d", item.ID, item.CorrectIndex)
		}
		g.items[item.ConceptID] = append(g.items[item.ConceptID], item)
	}

	return g, nil
}

// topoSort runs Kahn's algorithm over the prerequisite edges. A non-empty
// remainder means a cycle, which the graph invariant forbids.
func topoSort(nodes []Node, byID map[string]*Node) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string)
	for i := range nodes {
		inDegree[nodes[i].ID] = len(nodes[i].Prerequisites)
		for _, p := range nodes[i].Prerequisites {
			dependents[p] = append(dependents[p], nodes[i].ID)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		deps := append([]string(nil), dependents[id]...)
		sort.Strings(deps)
		for _, d := range deps {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("prerequisite cycle detected: sorted %d of %d nodes", len(order), len(nodes))
	}
	return order, nil
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Subjects returns the subjects present in the graph, sorted.
func (g *Graph) Subjects() []string {
	out := make([]string, 0, len(g.bySubject))
	for s := range g.bySubject {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// BySubject returns the nodes for a subject in load order.
func (g *Graph) BySubject(subject string) []Node {
	return append([]Node(nil), g.bySubject[subject]...)
}

// QuizItems returns the quiz items owned by a concept.
func (g *Graph) QuizItems(conceptID string) []QuizItem {
	return append([]QuizItem(nil), g.items[conceptID]...)
}

// IsUnlocked reports whether every prerequisite of the node is in the
// completed set. Vacuously true for nodes with no prerequisites.
func (g *Graph) IsUnlocked(id string, completed map[string]bool) bool {
	n, ok := g.byID[id]
	if !ok {
		return false
	}
	for _, p := range n.Prerequisites {
		if !completed[p] {
			return false
		}
	}
	return true
}

// RecommendNext picks the next concept for a learner in a subject: among
// nodes whose prerequisites are all completed and which are not
// themselves completed, it returns the one with the lowest
// difficulty x (1 - mastery) score. Mastery defaults to 0 when absent.
// Ties keep the earlier node in load order. Returns false when no node
// qualifies.
func (g *Graph) RecommendNext(subject string, completed map[string]bool, mastery map[string]float64) (Node, bool) {
	var (
		best      Node
		bestScore float64
		found     bool
	)
	for _, n := range g.bySubject[subject] {
		if completed[n.ID] {
			continue
		}
		if !g.IsUnlocked(n.ID, completed) {
			continue
		}
		score := float64(n.Difficulty) * (1 - mastery[n.ID])
		if !found || score < bestScore {
			best = n
			bestScore = score
			found = true
		}
	}
	return best, found
}

package hexmap

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrNoRoute is returned when the goal cannot be reached from the start.
var ErrNoRoute = errors.New("no route between hexes")

// EdgeCost prices one step between adjacent coordinates in whatever unit
// the caller routes by. Returning ok=false marks the edge impassable or
// the destination off-map.
type EdgeCost func(from, to Coord) (cost float64, ok bool)

type frontierNode struct {
	coord Coord
	cost  float64
	seq   int
}

// frontier is a min-heap on cost. Equal costs pop in insertion order so a
// route is the same on every run regardless of map iteration order upstream.
type frontier []frontierNode

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(frontierNode)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	*f = old[:n-1]
	return node
}

// FindRoute runs Dijkstra from start to goal over the six-neighbor grid,
// pricing each step with cost. It returns the coordinate chain including
// both endpoints and the total cost. A start equal to the goal yields a
// one-element route at cost zero.
func FindRoute(start, goal Coord, cost EdgeCost) ([]Coord, float64, error) {
	if start == goal {
		return []Coord{start}, 0, nil
	}

	best := map[Coord]float64{start: 0}
	previous := map[Coord]Coord{}
	visited := map[Coord]bool{}

	seq := 0
	pq := &frontier{{coord: start, cost: 0, seq: seq}}
	heap.Init(pq)

	for pq.Len() > 0 {
		node := heap.Pop(pq).(frontierNode)
		if visited[node.coord] {
			continue
		}
		visited[node.coord] = true
		if node.coord == goal {
			break
		}

		for _, next := range node.coord.Neighbors() {
			if visited[next] {
				continue
			}
			edge, ok := cost(node.coord, next)
			if !ok {
				continue
			}
			if edge < 0 {
				return nil, 0, fmt.Errorf("negative edge cost %v at %s", edge, next)
			}
			total := node.cost + edge
			if prev, seen := best[next]; seen && total >= prev {
				continue
			}
			best[next] = total
			previous[next] = node.coord
			seq++
			heap.Push(pq, frontierNode{coord: next, cost: total, seq: seq})
		}
	}

	if !visited[goal] {
		return nil, 0, fmt.Errorf("%w: %s to %s", ErrNoRoute, start, goal)
	}

	route := []Coord{goal}
	for at := goal; at != start; {
		at = previous[at]
		route = append(route, at)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, best[goal], nil
}

// Adapted from: https://github.com/hinshun/floodfill

package game

import "github.com/gammazero/deque"

type NeighborGetter func(Coord) []Coord

// Visitor is called once per flooded coordinate, and returns whether the
// flood should continue through its neighbors
type Visitor func(Coord) bool

// flood performs a breadth-first traversal from start over an explicit work
// list. Every coordinate is visited at most once.
func flood(start Coord, visit Visitor, getNeighbors NeighborGetter) {
	visited := map[Coord]struct{}{start: {}}

	var visitQueue deque.Deque[Coord]
	visitQueue.PushBack(start)

	for visitQueue.Len() > 0 {
		coord := visitQueue.PopFront()
		if !visit(coord) {
			continue
		}

		for _, neighbor := range getNeighbors(coord) {
			// Don't visit, if already visited
			if _, alreadyVisited := visited[neighbor]; alreadyVisited {
				continue
			}
			visited[neighbor] = struct{}{}
			visitQueue.PushBack(neighbor)
		}
	}
}

package collections

type Set[V comparable] map[V]struct{}

func NewSet[V comparable](values ...V) Set[V] {
	set := make(Set[V], len(values))
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// Add an element to the set
func (set Set[V]) Add(value V) {
	set[value] = struct{}{}
}

// Remove an element from the set (or no-op if element not present)
func (set Set[V]) Remove(value V) {
	delete(set, value)
}

// Contains returns whether the element exists within the set. A nil set
// contains nothing.
func (set Set[V]) Contains(value V) bool {
	_, contains := set[value]
	return contains
}

// Toggle adds the element if absent, or removes it if present, and returns
// whether the element is in the set afterwards
func (set Set[V]) Toggle(value V) bool {
	if set.Contains(value) {
		set.Remove(value)
		return false
	}
	set.Add(value)
	return true
}

func (set Set[V]) Len() int {
	return len(set)
}

// Clear removes every element, keeping the allocated map
func (set Set[V]) Clear() {
	for value := range set {
		delete(set, value)
	}
}

// Difference returns a new Set containing all elements from the calling set
// not present in the other set
func (set Set[V]) Difference(other Set[V]) Set[V] {
	difference := make(Set[V])
	for value := range set {
		if !other.Contains(value) {
			difference.Add(value)
		}
	}
	return difference
}

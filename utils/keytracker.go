package utils

// KeyTracker tracks keys already seen so that only first occurrences are kept.
// It is not safe for concurrent use.
type KeyTracker[K comparable] struct {
	seen map[K]struct{}
}

// NewKeyTracker creates a new tracker
func NewKeyTracker[K comparable]() *KeyTracker[K] {
	return &KeyTracker[K]{seen: make(map[K]struct{})}
}

// Add returns true if the key is new (not seen before), false if duplicate
func (t *KeyTracker[K]) Add(key K) bool {
	if _, exists := t.seen[key]; exists {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// Count returns the number of distinct keys seen
func (t *KeyTracker[K]) Count() int {
	return len(t.seen)
}

package extractor

import "imgtext/internal/domain"

// orderedSet keeps the first occurrence of each reference in insertion order.
type orderedSet struct {
	seen  map[domain.ImageReference]struct{}
	items []domain.ImageReference
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[domain.ImageReference]struct{})}
}

// Add inserts ref and reports whether it was new.
func (s *orderedSet) Add(ref domain.ImageReference) bool {
	if _, ok := s.seen[ref]; ok {
		return false
	}
	s.seen[ref] = struct{}{}
	s.items = append(s.items, ref)
	return true
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

func (s *orderedSet) Items() []domain.ImageReference {
	out := make([]domain.ImageReference, len(s.items))
	copy(out, s.items)
	return out
}

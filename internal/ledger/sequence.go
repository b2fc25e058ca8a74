package ledger

// sequence hands out order ids. Ids start at 1, strictly increase and are
// never reused, even after the order they were given to is removed.
type sequence struct {
	next int
}

func newSequence(start int) *sequence {
	if start < 1 {
		start = 1
	}
	return &sequence{next: start}
}

// peek returns the id the next advance will hand out.
func (s *sequence) peek() int {
	return s.next
}

// advance returns the next id and moves past it.
func (s *sequence) advance() int {
	id := s.next
	s.next++
	return id
}

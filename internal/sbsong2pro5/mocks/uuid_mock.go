package mocks

import "fmt"

// SequenceUUIDSource は連番の UUID を返すUUIDSourceです
type SequenceUUIDSource struct {
	n int
}

// New は次の UUID を返します
func (s *SequenceUUIDSource) New() string {
	s.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012X", s.n)
}

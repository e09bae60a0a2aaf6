// Package template resolves {{...}} placeholder expressions in prompt
// templates: entity/semantic/numeric variables, path variables, and
// template function calls evaluated against sandbox artifacts.
//
// Resolution of one template happens inside a Session, which owns the
// random source and guarantees that the same variable key resolves to the
// same value everywhere it recurs.
package template

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Session caches variable bindings for one generation unit (one
// question_id + sample_number pair). It is not safe for concurrent use;
// each resolution pass owns its session exclusively.
type Session struct {
	id       string
	seed     int64
	seeded   bool
	rng      *rand.Rand
	bindings map[string]string
}

// NewSession creates an unseeded session with fresh randomness.
func NewSession() *Session {
	return &Session{
		id:       uuid.NewString(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		bindings: make(map[string]string),
	}
}

// NewSeededSession creates a session whose random source is fixed, for
// reproducible regression fixtures. Clear() rewinds to the same seed.
func NewSeededSession(seed int64) *Session {
	return &Session{
		id:       uuid.NewString(),
		seed:     seed,
		seeded:   true,
		rng:      rand.New(rand.NewSource(seed)),
		bindings: make(map[string]string),
	}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Rand returns the session's random source.
func (s *Session) Rand() *rand.Rand {
	return s.rng
}

// GetOrCreate returns the cached value for key, invoking gen exactly once
// on first reference. Subsequent calls return the cached value
// unconditionally.
func (s *Session) GetOrCreate(key string, gen func() string) string {
	if v, ok := s.bindings[key]; ok {
		return v
	}
	v := gen()
	s.bindings[key] = v
	return v
}

// forget removes a binding whose generator failed, so the key is retried
// rather than memoized as empty.
func (s *Session) forget(key string) {
	delete(s.bindings, key)
}

// Lookup returns the cached value for key, if any.
func (s *Session) Lookup(key string) (string, bool) {
	v, ok := s.bindings[key]
	return v, ok
}

// Bindings returns a copy of all resolved variable bindings.
func (s *Session) Bindings() map[string]string {
	out := make(map[string]string, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Clear discards all bindings. A seeded session also rewinds its random
// source, so re-resolving after Clear reproduces identical output; an
// unseeded session produces fresh randomness.
func (s *Session) Clear() {
	s.bindings = make(map[string]string)
	if s.seeded {
		s.rng = rand.New(rand.NewSource(s.seed))
	}
}

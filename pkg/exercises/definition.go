// Package exercises defines the ten facial exercises, their frame
// validators, and the session tracker that turns per-frame results into
// completions.
package exercises

import (
	"fmt"
	"sort"
	"sync"

	"github.com/PittPrat/facevibe/pkg/landmarks"
)

// CheckFunc evaluates one frame against an exercise's movement
// requirement. It returns whether the requirement is met right now and a
// progress fraction in [0,1] describing how close the face is. A false
// result is a normal outcome, never an error.
type CheckFunc func(f *landmarks.Frame) (ok bool, progress float64)

// Definition is one immutable facial exercise.
type Definition struct {
	Name           string
	Check          CheckFunc
	SuccessMessage string
	FailureMessage string
}

// Registry holds the set of known exercises, keyed by name.
type Registry struct {
	mu        sync.RWMutex
	exercises map[string]*Definition
}

// NewRegistry creates a registry preloaded with the built-in exercises.
func NewRegistry() *Registry {
	r := &Registry{exercises: make(map[string]*Definition)}
	for i := range Builtin {
		r.Register(&Builtin[i])
	}
	return r
}

// Register adds an exercise to the registry.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises[def.Name] = def
}

// Get retrieves an exercise by name.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.exercises[name]
	if !ok {
		return nil, fmt.Errorf("unknown exercise: %s", name)
	}
	return def, nil
}

// Names returns all registered exercise names, sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exercises))
	for name := range r.exercises {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

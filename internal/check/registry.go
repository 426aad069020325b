package check

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
)

// Constructor builds a fresh Troubleshooter for one execution pass.
type Constructor func() Troubleshooter

// Registry is the static catalog of available checks. Registration order is
// preserved so reports and help output are reproducible.
type Registry struct {
	order  []string
	byName map[string]entry
}

type entry struct {
	description string
	construct   Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]entry)}
}

// Register adds a named check to the catalog. Registering the same name
// twice is a programming error and panics; catalogs are assembled once at
// startup, never from user input.
func (r *Registry) Register(name, description string, c Constructor) {
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("check %q registered twice", name))
	}
	r.order = append(r.order, name)
	r.byName[name] = entry{description: description, construct: c}
}

// Lookup resolves a check name to its constructor.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.construct, true
}

// Names returns all registered check names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Describe returns the description registered for name, or "".
func (r *Registry) Describe(name string) string {
	return r.byName[name].description
}

// Validate checks every selected name against the catalog before anything
// runs. An unknown name is a configuration error, never a failing check.
func (r *Registry) Validate(names []string) error {
	var unknown []string
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ConfigError{
		Problem:    fmt.Sprintf("unknown check name(s): %v", unknown),
		Suggestion: r.suggest(unknown[0]),
	}
}

// suggest finds the closest catalog name. Matching is by subsequence, and a
// transposed letter ("shh") is not a subsequence of anything, so the pattern
// is shortened from the right until something matches.
func (r *Registry) suggest(name string) string {
	for pat := name; pat != ""; pat = pat[:len(pat)-1] {
		if matches := fuzzy.Find(pat, r.order); len(matches) > 0 {
			return matches[0].Str
		}
	}
	return ""
}

// ConfigError is fatal to the invoking process (one-shot) or to daemon
// startup. It never appears inside a report.
type ConfigError struct {
	Problem    string
	Suggestion string
}

func (e *ConfigError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %q?)", e.Problem, e.Suggestion)
	}
	return e.Problem
}

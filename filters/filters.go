// Package filters implements text filtering of resolved CSS.
package filters

import (
	"fmt"
	"sort"
)

// Filter is an interface declaring a filter.
type Filter interface {
	Name() string
	Apply(s string) (string, error)
}

// Maker is a type of function which returns a new instance of a filter.
type Maker func() Filter

// makers stores builtin filter makers addressed by their names.
var makers = make(map[string]Maker)

// Register registers a new filter maker.
func Register(name string, maker Maker) {
	makers[name] = maker
}

// Make creates a new filter by name.
// It returns an error if it can't find a filter maker with such name.
func Make(name string) (Filter, error) {
	maker := makers[name]
	if maker == nil {
		return nil, fmt.Errorf("filter %q not found (have %v)", name, Names())
	}
	return maker(), nil
}

// Names returns the sorted names of registered filters.
func Names() []string {
	names := make([]string, 0, len(makers))
	for name := range makers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package validator checks references between type declarations before
// they are defined.
package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolved is returned when declarations reference missing types or
// reference each other in a cycle.
var ErrUnresolved = errors.New("unresolved type references")

// Node is one type awaiting definition and the type names it depends on.
type Node struct {
	Name string
	Deps []string
}

// Order returns node names so that every node comes after its dependencies.
// Dependencies outside nodes must satisfy known. Every missing reference and
// cycle is reported in a single error.
func Order(nodes []Node, known func(string) bool) ([]string, error) {
	index := make(map[string]Node, len(nodes))
	var problems []string
	for _, n := range nodes {
		if _, dup := index[n.Name]; dup {
			problems = append(problems, fmt.Sprintf("Duplicate type '%s'", n.Name))
			continue
		}
		index[n.Name] = n
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(nodes))
	seen := make(map[string]bool)
	report := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			problems = append(problems, msg)
		}
	}

	order := make([]string, 0, len(index))
	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		switch state[name] {
		case done:
			return
		case visiting:
			report(fmt.Sprintf("Cycle: %s", strings.Join(append(path, name), " -> ")))
			return
		}
		state[name] = visiting
		path = append(path, name)

		for _, dep := range index[name].Deps {
			if _, local := index[dep]; local {
				visit(dep, path)
				continue
			}
			if known != nil && known(dep) {
				continue
			}
			report(fmt.Sprintf("Missing type '%s' referenced by '%s'", dep, name))
		}

		state[name] = done
		order = append(order, name)
	}

	for _, n := range nodes {
		visit(n.Name, nil)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: found %d errors:\n- %s", ErrUnresolved, len(problems), strings.Join(problems, "\n- "))
	}
	return order, nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/gdtsgen/internal/model"

// ResolveDeps expands a class filter to include every class transitively
// reachable from it: superclasses and classes named by method arguments or
// return values. Returns nil if filter is nil (meaning "generate all
// classes"). Names absent from classes are kept as given.
func ResolveDeps(classes []*model.ClassInfo, filter map[string]bool) map[string]bool {
	if filter == nil {
		return nil
	}

	index := make(map[string]*model.ClassInfo, len(classes))
	for _, c := range classes {
		index[c.Name] = c
	}

	expanded := make(map[string]bool)
	for name := range filter {
		collectDeps(index, name, expanded)
	}
	return expanded
}

// collectDeps recursively collects all classes referenced by name.
func collectDeps(index map[string]*model.ClassInfo, name string, visited map[string]bool) {
	if name == "" || visited[name] {
		return // Already processed or cycle
	}
	visited[name] = true

	c, ok := index[name]
	if !ok {
		return
	}

	if _, known := index[c.Super]; known {
		collectDeps(index, c.Super, visited)
	}
	for _, m := range c.Methods {
		for _, a := range m.Args {
			collectRef(index, a, visited)
		}
		if m.Return != nil {
			collectRef(index, *m.Return, visited)
		}
	}
}

// collectRef follows a typed slot if it names a known class.
func collectRef(index map[string]*model.ClassInfo, p model.PropertyInfo, visited map[string]bool) {
	if _, known := index[p.ClassName]; known {
		collectDeps(index, p.ClassName, visited)
	}
}

// FilterSet turns a list of names into a filter; empty means no filter.
func FilterSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Package samples holds the built-in buggy programs used to exercise the
// repair loop.
package samples

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed cases/*.py
var casesFS embed.FS

// Case is one built-in program.
type Case struct {
	Name        string
	Title       string
	Description string
	Code        string
}

var meta = map[string]struct{ title, desc string }{
	"preorder": {"Test Case 1", "Tree traversal visits the root in the wrong order"},
	"fib-memo": {"Test Case 2", "Memoised Fibonacci returns the wrong cache key"},
}

// order keeps the picker stable; anything unlisted sorts after by name.
var order = []string{"preorder", "fib-memo"}

// All returns every embedded case in picker order.
func All() []Case {
	entries, err := fs.ReadDir(casesFS, "cases")
	if err != nil {
		return nil
	}
	cases := make([]Case, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".py" {
			continue
		}
		data, err := casesFS.ReadFile(path.Join("cases", e.Name()))
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".py")
		m := meta[name]
		title := m.title
		if title == "" {
			title = name
		}
		cases = append(cases, Case{Name: name, Title: title, Description: m.desc, Code: string(data)})
	}
	sort.SliceStable(cases, func(i, j int) bool {
		ri, rj := rank(cases[i].Name), rank(cases[j].Name)
		if ri != rj {
			return ri < rj
		}
		return cases[i].Name < cases[j].Name
	})
	return cases
}

func rank(name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return len(order)
}

// Get looks a case up by name.
func Get(name string) (Case, error) {
	for _, c := range All() {
		if c.Name == name {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("unknown case %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists case names in picker order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// Default is the case loaded into a fresh session.
func Default() Case {
	c, err := Get(order[0])
	if err != nil {
		return Case{}
	}
	return c
}

package main

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/agenthands/exprc/pkg/vm"
)

// builtins are the host functions that run and demo make available to
// programs, by name.
var builtins = map[string]vm.HostFunction{
	"neg": func(x int64) (int64, error) { return -x, nil },
	"abs": func(x int64) (int64, error) {
		if x < 0 {
			return -x, nil
		}
		return x, nil
	},
	"double": func(x int64) (int64, error) { return 2 * x, nil },
	"square": func(x int64) (int64, error) { return x * x, nil },
	"inc":    func(x int64) (int64, error) { return x + 1, nil },
}

func builtinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerHost registers every builtin on m, then each binding. A binding
// has the form NAME=BUILTIN and makes NAME call BUILTIN.
func registerHost(m *vm.Machine, bindings []string) error {
	for name, fn := range builtins {
		m.RegisterHostFunction(name, fn)
	}
	for _, b := range bindings {
		name, target, ok := strings.Cut(b, "=")
		if !ok || name == "" {
			return errors.Errorf("bad binding %q, want NAME=BUILTIN", b)
		}
		fn, ok := builtins[target]
		if !ok {
			return errors.Errorf("bad binding %q: no builtin %q (have %s)", b, target, strings.Join(builtinNames(), ", "))
		}
		m.RegisterHostFunction(name, fn)
	}
	return nil
}

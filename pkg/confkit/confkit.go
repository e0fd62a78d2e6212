// Package confkit holds the config-file plumbing shared by the service and
// its CLIs: dotenv bootstrap and per-subsystem config sections that live in
// their own yaml files next to the main one.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath resolves a section file path against the main config file's
// directory. Environment variables are expanded first; absolute paths pass
// through untouched.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section is a config subsection loaded from its own file. File names the
// yaml file (relative to the main config); Value carries the parsed result
// after Hydrate.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate loads the section through loader, resolving File against base. A
// section with no File stays empty, which callers treat as "use defaults".
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}

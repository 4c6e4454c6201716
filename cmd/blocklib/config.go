package main

import (
	"errors"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = ".blocklib.yaml"

// YAML is a kong configuration loader for YAML files. Keys may use dashes
// or underscores; a top-level key named after a command holds flags for
// that command only:
//
//	org: acme
//	generate:
//	  keep_context: true
//	  rate: 2
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var resolver kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if cmd := parent.Command; cmd != nil {
			if scoped, ok := values[cmd.Name].(map[string]any); ok {
				if v, ok := lookup(scoped, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return resolver, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		v, ok := values[key]
		if !ok {
			continue
		}
		if _, nested := v.(map[string]any); nested {
			continue
		}
		return v, true
	}
	return nil, false
}

// Package builtins provides the default set of host-standard-library
// backed functions an Evaluator can register: math, string, formatting
// and type-check helpers, plus the two locally-defined control functions
// `if` and `list`. It is deliberately a separate package from the core
// evaluator so that package stays free of any particular catalog's
// choices — a host is free to register a subset, a superset, or none of
// this at all.
package builtins

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"github.com/surveyrt/exprsafe"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Counts      []int  `yaml:"counts"`
	Variadic    bool   `yaml:"variadic"`
}

type catalogDoc struct {
	Functions []catalogEntry `yaml:"functions"`
}

// impls maps a catalog name to its Go implementation; every name declared
// in catalog.yaml must have an entry here or init panics, since a catalog
// entry with no bound behavior is a packaging bug, not a runtime one.
var impls = map[string]exprsafe.FunctionImpl{
	"abs":           absImpl,
	"ceil":          ceilImpl,
	"floor":         floorImpl,
	"round":         roundImpl,
	"min":           minImpl,
	"max":           maxImpl,
	"sum":           sumImpl,
	"pi":            piImpl,
	"pow":           powImpl,
	"sqrt":          sqrtImpl,
	"intval":        intvalImpl,
	"floatval":      floatvalImpl,
	"strlen":        strlenImpl,
	"trim":          trimImpl,
	"strtolower":    strtolowerImpl,
	"strtoupper":    strtoupperImpl,
	"concat":        concatImpl,
	"substr":        substrImpl,
	"str_replace":   strReplaceImpl,
	"sprintf":       sprintfImpl,
	"number_format": numberFormatImpl,
	"fixnum":        fixnumImpl,
	"is_numeric":    isNumericImpl,
	"is_empty":      isEmptyImpl,
	"if":            ifImpl,
	"list":          listImpl,
}

var defaultCatalog map[string]exprsafe.Function

func init() {
	var doc catalogDoc
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		panic(fmt.Sprintf("builtins: malformed catalog.yaml: %v", err))
	}

	defaultCatalog = make(map[string]exprsafe.Function, len(doc.Functions))
	for _, entry := range doc.Functions {
		impl, ok := impls[entry.Name]
		if !ok {
			panic(fmt.Sprintf("builtins: catalog entry %q has no bound implementation", entry.Name))
		}
		var arity exprsafe.Arity
		if entry.Variadic {
			arity = exprsafe.VariadicArity()
		} else {
			arity = exprsafe.FixedArity(entry.Counts...)
		}
		defaultCatalog[entry.Name] = exprsafe.Function{
			Name:        entry.Name,
			Description: entry.Description,
			Accepts:     arity,
			Impl:        impl,
		}
	}
}

// Catalog returns the default builtin function set, ready to pass to an
// Evaluator's RegisterFunctions. Each call returns a fresh map so a caller
// can prune or override entries without mutating package state.
func Catalog() map[string]exprsafe.Function {
	out := make(map[string]exprsafe.Function, len(defaultCatalog))
	for name, fn := range defaultCatalog {
		out[name] = fn
	}
	return out
}

// CatalogWithLogger is Catalog, plus a logger functions may use for
// diagnostics (currently only number_format logs, on an unsupported
// locale tag falling back to the default).
func CatalogWithLogger(log logrus.FieldLogger) map[string]exprsafe.Function {
	formatLog = log
	return Catalog()
}

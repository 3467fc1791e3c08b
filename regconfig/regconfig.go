// Package regconfig reads and writes Registry variable/reserved-word
// snapshots as flat JSON objects (name -> scalar), so a host process that
// keeps per-session answer state outside the evaluator can seed and
// persist a Registry without the evaluator depending on the host's own
// storage types.
package regconfig

import (
	"fmt"
	"strings"

	"github.com/surveyrt/exprsafe"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// pathEscaper escapes the characters sjson's Set path syntax treats as
// structural (a literal backslash, then a literal dot) so a registry name
// like "q5pointChoice.code" is written as one flat JSON key instead of
// being split into a nested path. gjson.ForEach reads keys back literally
// with no path interpretation, so Import needs no matching unescape step.
var pathEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`)

// Kind selects which of a Registry's two name maps Import/Export targets.
type Kind int

const (
	KindVariable Kind = iota
	KindReserved
)

// MergeMode selects how Import combines a decoded payload with whatever
// is already registered, mirroring register_*_merge vs register_*_replace.
type MergeMode int

const (
	MergeAdditive MergeMode = iota
	MergeReplace
)

// Import decodes payload as a flat JSON object and registers its entries
// into reg, per kind and mode. A JSON value's type picks the Scalar's Go
// type: string -> string, bool -> bool, number -> float64; objects,
// arrays and null are rejected since Registry scalars are atomic.
func Import(reg *exprsafe.Registry, payload []byte, kind Kind, mode MergeMode) error {
	if !gjson.ValidBytes(payload) {
		return fmt.Errorf("regconfig: invalid JSON payload")
	}

	parsed := gjson.ParseBytes(payload)
	if !parsed.IsObject() {
		return fmt.Errorf("regconfig: payload must be a flat JSON object")
	}

	entries := make(map[string]exprsafe.Scalar)
	var decodeErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			entries[key.String()] = value.String()
		case gjson.Number:
			entries[key.String()] = value.Float()
		case gjson.True, gjson.False:
			entries[key.String()] = value.Bool()
		default:
			decodeErr = fmt.Errorf("regconfig: field %q has unsupported JSON type", key.String())
			return false
		}
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}

	switch {
	case kind == KindVariable && mode == MergeAdditive:
		reg.RegisterVariablesMerge(entries)
	case kind == KindVariable && mode == MergeReplace:
		reg.RegisterVariablesReplace(entries)
	case kind == KindReserved && mode == MergeAdditive:
		reg.RegisterReservedMerge(entries)
	case kind == KindReserved && mode == MergeReplace:
		reg.RegisterReservedReplace(entries)
	}
	return nil
}

// Export walks the registry's introspection accessors for kind and builds
// a flat JSON document, one sjson.SetBytes call per entry so the result
// stays valid JSON even when a string value needs escaping.
func Export(reg *exprsafe.Registry, kind Kind) ([]byte, error) {
	var names []string
	var lookup func(name string) (exprsafe.Scalar, bool)
	if kind == KindVariable {
		names = reg.VariableNames()
		lookup = reg.Variable
	} else {
		names = reg.ReservedNames()
		lookup = reg.Reserved
	}

	doc := []byte("{}")
	for _, name := range names {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		var err error
		doc, err = sjson.SetBytes(doc, pathEscaper.Replace(name), v)
		if err != nil {
			return nil, fmt.Errorf("regconfig: encoding %q: %w", name, err)
		}
	}
	return doc, nil
}

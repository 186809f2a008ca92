// Package inference derives TypeScript parameter types from route path
// patterns. It is the pure core of the generator: a path pattern goes in,
// two structural type expressions (raw and normalized) come out.
package inference

import "strings"

// EmptyRecord is the TypeScript type emitted for routes without parameters.
// The consuming type system distinguishes "an object with no properties"
// from "no type", so parameterless routes get this marker rather than
// nothing at all.
const EmptyRecord = "Record<never, never>"

// ParamTypes holds the two structural type expressions derived from one
// path pattern.
type ParamTypes struct {
	// Raw is the shape parameters may have before normalization, e.g.
	// "{ id: string | number }".
	Raw string
	// Normalized is the shape after the router's normalization, e.g.
	// "{ id: string }".
	Normalized string
}

// Infer extracts the parameter tokens of pattern and derives both
// structural types from them.
func Infer(pattern string) ParamTypes {
	return DeriveTypes(ExtractParams(pattern))
}

// DeriveTypes builds the raw and normalized type expressions for a set of
// extracted parameters. Singular parameters come first in encounter order,
// followed by repeatable ones in encounter order.
func DeriveTypes(params []ParsedParam) ParamTypes {
	if len(params) == 0 {
		return ParamTypes{Raw: EmptyRecord, Normalized: EmptyRecord}
	}

	ordered := make([]ParsedParam, 0, len(params))
	for _, p := range params {
		if !p.Repeatable {
			ordered = append(ordered, p)
		}
	}
	for _, p := range params {
		if p.Repeatable {
			ordered = append(ordered, p)
		}
	}

	var raw, normalized strings.Builder
	raw.WriteString("{ ")
	normalized.WriteString("{ ")
	for i, p := range ordered {
		if i > 0 {
			raw.WriteString(", ")
			normalized.WriteString(", ")
		}
		raw.WriteString(p.Name)
		normalized.WriteString(p.Name)
		if p.Repeatable {
			raw.WriteString(": Array<string | number>")
			normalized.WriteString(": string[]")
		} else {
			raw.WriteString(": string | number")
			normalized.WriteString(": string")
		}
	}
	raw.WriteString(" }")
	normalized.WriteString(" }")

	return ParamTypes{Raw: raw.String(), Normalized: normalized.String()}
}

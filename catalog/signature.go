// Package catalog derives required-argument signatures from parsed fluent
// resources and serves them through a per-domain index that is built once
// per validation session and shared read-only thereafter.
package catalog

import (
	"sort"

	"github.com/abiiranathan/fluentlint/ftl"
)

// Signature is the set of variable names a message or attribute pattern
// can reference. Immutable once built.
type Signature map[string]struct{}

// Names returns the signature's variable names in sorted order.
func (s Signature) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether the signature requires the named variable.
func (s Signature) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// PatternSignature computes the set of distinct variable names referenced
// anywhere in a pattern, including inside nested select sub-expressions
// and function/term call arguments.
func PatternSignature(p ftl.Pattern) Signature {
	sig := make(Signature)
	patternArgs(p, sig)
	return sig
}

func patternArgs(p ftl.Pattern, sig Signature) {
	for _, elem := range p {
		if pl, ok := elem.(*ftl.Placeable); ok {
			expressionArgs(pl.Expression, sig)
		}
	}
}

// expressionArgs unions into sig the variables an expression can reference.
//
// A select expression contributes its selector plus every variant branch:
// any branch may be the one chosen at runtime, so the requirement is the
// union, never the intersection. Message references contribute nothing;
// the referenced message resolves its own arguments.
func expressionArgs(expr ftl.Expression, sig Signature) {
	switch e := expr.(type) {
	case *ftl.VariableReference:
		sig[e.Name] = struct{}{}

	case *ftl.SelectExpression:
		expressionArgs(e.Selector, sig)
		for _, v := range e.Variants {
			patternArgs(v.Value, sig)
		}

	case *ftl.FunctionReference:
		callArgs(e.Arguments, sig)

	case *ftl.TermReference:
		callArgs(e.Arguments, sig)
	}
}

func callArgs(args *ftl.CallArguments, sig Signature) {
	if args == nil {
		return
	}
	for _, expr := range args.Positional {
		expressionArgs(expr, sig)
	}
	for _, named := range args.Named {
		expressionArgs(named.Value, sig)
	}
}

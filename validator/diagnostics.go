package validator

import (
	"fmt"
	"strings"
)

// Diagnostic is one build-time failure: a failed call-site request
// rendered with its source location and a human-readable explanation.
type Diagnostic struct {
	// File, Line and Column are the call-site location, carried over
	// unchanged from the Request.
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	// Domain, MessageID and AttributeID identify what was requested.
	Domain      string `json:"domain"`
	MessageID   string `json:"messageId"`
	AttributeID string `json:"attributeId,omitempty"`

	// Kind is the mismatch classification.
	Kind Kind `json:"kind"`
	// Message is the human-readable explanation.
	Message string `json:"message"`
	// Missing and Unexpected carry the argument names for argument
	// mismatches.
	Missing    []string `json:"missing,omitempty"`
	Unexpected []string `json:"unexpected,omitempty"`
	// Suggestions are the ranked near-miss identifiers, capped by the
	// session's MaxSuggestions.
	Suggestions []string `json:"suggestions,omitempty"`
}

// String renders the diagnostic in the conventional file:line:col form
// used for build failures.
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
}

// Diagnose renders a non-exact validation result into a diagnostic.
// Returns nil for Exact results.
func (s *Session) Diagnose(req Request, res Result) *Diagnostic {
	if res.Kind == Exact {
		return nil
	}

	d := &Diagnostic{
		File:        req.File,
		Line:        req.Line,
		Column:      req.Column,
		Domain:      req.Domain,
		MessageID:   req.MessageID,
		AttributeID: req.AttributeID,
		Kind:        res.Kind,
		Missing:     res.Missing,
		Unexpected:  res.Unexpected,
		Suggestions: res.Suggestions,
	}

	switch res.Kind {
	case UnknownDomain:
		d.Message = fmt.Sprintf("no usable fluent resources for domain %q: %v", req.Domain, res.domainErr)

	case UnknownMessage:
		d.Message = fmt.Sprintf(
			"message %q does not exist in the fallback language resources for domain %q%s",
			req.MessageID, req.Domain, didYouMean(res.Suggestions),
		)

	case UnknownAttribute:
		d.Message = fmt.Sprintf(
			"message %q has no attribute %q%s",
			req.MessageID, req.AttributeID, didYouMean(res.Suggestions),
		)

	case ArgumentMismatch:
		var parts []string
		if len(res.Missing) > 0 {
			parts = append(parts, fmt.Sprintf(
				"the following arguments have not been supplied: %s",
				quoteJoin(res.Missing),
			))
		}
		if len(res.Unexpected) > 0 {
			parts = append(parts, fmt.Sprintf(
				"the following arguments do not exist in the fluent message: %s",
				quoteJoin(res.Unexpected),
			))
		}
		d.Message = fmt.Sprintf("message %q: %s", ref(req), strings.Join(parts, "; "))
	}

	return d
}

// ref renders the requested identifier, attribute-qualified when needed.
func ref(req Request) string {
	if req.AttributeID != "" {
		return req.MessageID + "." + req.AttributeID
	}
	return req.MessageID
}

func didYouMean(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("; did you mean %q?", suggestions[0])
	default:
		return fmt.Sprintf("; did you mean one of %s?", quoteJoin(suggestions))
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}

// Package validator checks localization call-site requests against the
// signatures derived from the fallback-language fluent resources.
//
// The validator provides:
//   - Strict argument checking: a call-site must supply exactly the set of
//     variables its message pattern can reference - neither fewer nor more
//   - Attribute-aware lookups (`message-id.attribute-id`)
//   - Fuzzy-matched suggestions when an identifier does not exist
//   - Located, structured diagnostics suitable for build failures
//
// A Session accumulates every failure found across all requests rather
// than aborting on the first, so a single build attempt surfaces every
// mismatch at once.
package validator

import (
	"runtime"
	"sort"
	"sync"

	"github.com/abiiranathan/fluentlint/catalog"
)

// Request is a single localization call-site being checked: the requested
// message id, optional attribute id, the argument names supplied by the
// caller, and a source location used only for diagnostics.
type Request struct {
	// Domain is the resource domain the call-site addresses.
	Domain string `json:"domain"`
	// MessageID is the requested message identifier.
	MessageID string `json:"messageId"`
	// AttributeID addresses a message attribute; empty for the message value.
	AttributeID string `json:"attributeId,omitempty"`
	// Args are the argument names supplied at the call-site.
	Args []string `json:"args"`
	// ArgsLiteral reports whether Args is statically known. When the
	// call-site passes a runtime-built map, only message existence is
	// checked.
	ArgsLiteral bool `json:"argsLiteral"`

	// File, Line and Column locate the call in Go source.
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Kind classifies the outcome of validating one Request.
type Kind string

const (
	// Exact means the call-site matches the resource definition.
	Exact Kind = "exact"
	// UnknownDomain means no usable resources exist for the domain.
	UnknownDomain Kind = "unknown-domain"
	// UnknownMessage means the message id is not defined.
	UnknownMessage Kind = "unknown-message"
	// UnknownAttribute means the message exists but the attribute does not.
	UnknownAttribute Kind = "unknown-attribute"
	// ArgumentMismatch means the supplied argument set differs from the
	// signature; missing and unexpected names are reported together.
	ArgumentMismatch Kind = "argument-mismatch"
)

// Result is the outcome of validating one Request.
type Result struct {
	// Kind classifies the outcome.
	Kind Kind `json:"kind"`
	// Missing lists required variable names the call-site did not supply.
	Missing []string `json:"missing,omitempty"`
	// Unexpected lists supplied names the signature does not reference.
	Unexpected []string `json:"unexpected,omitempty"`
	// Suggestions are ranked near-miss identifiers for unknown ids.
	Suggestions []string `json:"suggestions,omitempty"`

	// domainErr carries the index failure for UnknownDomain diagnostics.
	domainErr error
}

// TableSource resolves a domain to its signature table. *catalog.Index is
// the production implementation; tests may substitute in-memory tables.
type TableSource interface {
	Table(domain string) (*catalog.Table, error)
}

// Session validates call-site requests against one resource index. It is
// safe for concurrent use: the index is write-once per domain and all
// other state is immutable after construction.
type Session struct {
	tables TableSource

	// MaxSuggestions caps the ranked suggestion list on unknown ids.
	MaxSuggestions int
}

// DefaultMaxSuggestions is the suggestion cap used by NewSession.
const DefaultMaxSuggestions = 3

// NewSession creates a validation session over the given table source.
func NewSession(tables TableSource) *Session {
	return &Session{tables: tables, MaxSuggestions: DefaultMaxSuggestions}
}

// Validate checks one call-site request and classifies the outcome.
//
// Resolution order: domain table, message id, attribute id (when given),
// then strict set comparison of supplied argument names against the
// resolved signature.
func (s *Session) Validate(req Request) Result {
	table, err := s.tables.Table(req.Domain)
	if err != nil {
		return Result{Kind: UnknownDomain, domainErr: err}
	}

	entry, ok := table.Message(req.MessageID)
	if !ok {
		return Result{
			Kind:        UnknownMessage,
			Suggestions: Rank(req.MessageID, table.MessageIDs(), s.MaxSuggestions),
		}
	}

	var sig catalog.Signature
	if req.AttributeID != "" {
		sig, ok = entry.Attribute(req.AttributeID)
		if !ok {
			return Result{
				Kind:        UnknownAttribute,
				Suggestions: Rank(req.AttributeID, entry.AttributeIDs(), s.MaxSuggestions),
			}
		}
	} else {
		if !entry.HasValue {
			// A message that declares only attributes has no pattern of its
			// own to check arguments against.
			return Result{Kind: Exact}
		}
		sig = entry.Args
	}

	if !req.ArgsLiteral {
		// Runtime-built argument maps cannot be checked statically; the
		// identifier lookup above is the whole check.
		return Result{Kind: Exact}
	}

	missing, unexpected := compareArgs(sig, req.Args)
	if len(missing) == 0 && len(unexpected) == 0 {
		return Result{Kind: Exact}
	}
	return Result{Kind: ArgumentMismatch, Missing: missing, Unexpected: unexpected}
}

// compareArgs performs the strict set-equality check between a signature
// and the supplied argument names. Both returned slices are sorted.
func compareArgs(sig catalog.Signature, supplied []string) (missing, unexpected []string) {
	suppliedSet := make(map[string]struct{}, len(supplied))
	for _, name := range supplied {
		suppliedSet[name] = struct{}{}
	}

	for _, name := range sig.Names() {
		if _, ok := suppliedSet[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range suppliedSet {
		if !sig.Contains(name) {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)
	return missing, unexpected
}

// CheckAll validates every request and returns one diagnostic per failed
// request, ordered by source location. The session never aborts early:
// all failures of a build are reported together.
//
// Requests are validated concurrently with one worker per CPU core; the
// index guarantees each domain's table is still built only once.
func (s *Session) CheckAll(requests []Request) []Diagnostic {
	if len(requests) == 0 {
		return nil
	}

	numWorkers := max(runtime.NumCPU(), 1)
	chunkSize := (len(requests) + numWorkers - 1) / numWorkers
	resultChan := make(chan []Diagnostic, numWorkers)
	var wg sync.WaitGroup

	for w := range numWorkers {
		start := w * chunkSize
		if start >= len(requests) {
			break
		}
		end := min(start+chunkSize, len(requests))
		chunk := requests[start:end]

		wg.Go(func() {
			var diags []Diagnostic
			for _, req := range chunk {
				if d := s.Diagnose(req, s.Validate(req)); d != nil {
					diags = append(diags, *d)
				}
			}
			resultChan <- diags
		})
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var all []Diagnostic
	for diags := range resultChan {
		all = append(all, diags...)
	}

	// Chunk completion order is nondeterministic; sort by location so
	// repeated runs produce identical output.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return all
}

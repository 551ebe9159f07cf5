// Package handlers is a small demo application with real localization
// call-sites. It is what fluentlint is pointed at in the repository's own
// tests and documentation; try renaming a message id or an argument key
// and running the checker.
package handlers

// Args is the named-argument set passed to a Localize call. Keys must be
// string literals for the checker to verify them statically; an Args value
// built at runtime is only checked for message existence.
type Args map[string]any

// Localizer resolves message ids against the loaded resource bundle for
// one domain.
type Localizer struct {
	domain   string
	language string
}

// NewLocalizer creates a localizer for the given domain and language.
func NewLocalizer(domain, language string) *Localizer {
	return &Localizer{domain: domain, language: language}
}

// Localize returns the localized message for id, formatted with args.
//
// The fixture does not ship a formatting runtime; it returns the id so the
// app stays runnable while still exercising every call shape the checker
// recognizes.
func (l *Localizer) Localize(id string, args ...Args) string {
	return id
}

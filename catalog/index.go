package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/abiiranathan/fluentlint/ftl"
)

// Index is the per-session cache of signature tables, keyed by domain.
//
// A domain's table is built on the first request for that domain: the
// fallback-language resources are loaded, parsed and signature-extracted
// exactly once, then shared read-only for the remainder of the session.
// Concurrent first requests for the same domain wait on the single build
// rather than observing a partially built table.
type Index struct {
	assetsDir string
	fallback  string

	domains sync.Map // domain -> *domainEntry
}

type domainEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewIndex creates an index over the fallback-language resources found
// under assetsDir. Resources for domain "app" are expected at
// <assetsDir>/<fallback>/app.ftl, plus any *.ftl files under
// <assetsDir>/<fallback>/app/ for multi-file domains.
func NewIndex(assetsDir, fallback string) *Index {
	return &Index{assetsDir: assetsDir, fallback: fallback}
}

// Fallback returns the fallback language tag the index was built for.
func (ix *Index) Fallback() string {
	return ix.fallback
}

// Table returns the signature table for a domain, building it on first
// use. A domain whose resources are missing or fail to parse yields the
// same error on every call; the failure never crashes the session.
func (ix *Index) Table(domain string) (*Table, error) {
	v, _ := ix.domains.LoadOrStore(domain, &domainEntry{})
	entry := v.(*domainEntry)
	entry.once.Do(func() {
		entry.table, entry.err = ix.build(domain)
	})
	return entry.table, entry.err
}

func (ix *Index) build(domain string) (*Table, error) {
	paths, err := ix.domainFiles(domain)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf(
			"no fluent resources for domain %q: expected %s",
			domain, filepath.Join(ix.assetsDir, ix.fallback, domain+".ftl"),
		)
	}

	var resources []*ftl.Resource
	var errs error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		res, err := ftl.Parse(path, string(data))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		res.Domain = domain
		res.Language = ix.fallback
		resources = append(resources, res)
	}

	// A parse failure in any file invalidates the whole domain: validating
	// against a partial resource set would produce misleading results.
	if errs != nil {
		return nil, fmt.Errorf("domain %q: %w", domain, errs)
	}

	return BuildTable(domain, resources...), nil
}

// domainFiles resolves the resource files contributing to a domain, in
// deterministic order: the domain file first, then any files of the
// domain's directory sorted by name.
func (ix *Index) domainFiles(domain string) ([]string, error) {
	langDir := filepath.Join(ix.assetsDir, ix.fallback)

	var paths []string
	single := filepath.Join(langDir, domain+".ftl")
	if _, err := os.Stat(single); err == nil {
		paths = append(paths, single)
	}

	extra, err := filepath.Glob(filepath.Join(langDir, domain, "*.ftl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(extra)
	return append(paths, extra...), nil
}

// Package scanner discovers localization call-sites in Go source.
//
// It loads the target package tree and recognizes calls to configured
// localization functions or methods. For each recognized call it extracts
// the literal message reference (`"msg-id"` or `"msg-id.attr-id"`), the
// literal argument names when they are statically known, and the source
// location, producing the validator.Request values a validation session
// consumes.
package scanner

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/abiiranathan/fluentlint/validator"
)

// Config defines which call patterns the scanner recognizes.
type Config struct {
	// FunctionNames are the function or method names treated as
	// localization lookups. The first string-literal argument of a call to
	// one of these names is the message reference.
	FunctionNames []string
}

// DefaultConfig recognizes the conventional localizer method names.
var DefaultConfig = Config{
	FunctionNames: []string{"Localize", "MustLocalize"},
}

// Result is the output of scanning one source tree.
type Result struct {
	// Requests are the discovered call-sites.
	Requests []validator.Request `json:"requests"`
	// Errors contains non-fatal loader errors (optional).
	Errors []string `json:"errors,omitempty"`
}

// ScanDir scans the Go packages rooted at dir for localization call-sites
// addressing the given domain. Load errors caused by missing imports are
// filtered out: they are environmental and do not affect call-site
// extraction, which only needs syntax.
func ScanDir(dir, domain string, cfg Config) Result {
	result := Result{}
	fset := token.NewFileSet()

	pcfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:   dir,
		Fset:  fset,
		Tests: false,
	}

	pkgs, err := packages.Load(pcfg, "./...")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("load error: %v", err))
		return result
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if !isImportRelatedError(e.Msg) {
				result.Errors = append(result.Errors, e.Msg)
			}
		}
		for _, f := range pkg.Syntax {
			result.Requests = append(result.Requests, CallSitesInFile(fset, f, dir, domain, cfg)...)
		}
	}

	return result
}

// CallSitesInFile extracts the localization call-sites of a single parsed
// file. File paths in the returned requests are made relative to dir when
// possible.
func CallSitesInFile(fset *token.FileSet, f *ast.File, dir, domain string, cfg Config) []validator.Request {
	var requests []validator.Request

	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		// Both calling conventions are recognized:
		//   1. Method call:  loc.Localize("msg-id", args)
		//   2. Plain call:   Localize(loc, "msg-id", args)
		// In both, the message reference is the first string-literal
		// argument and the argument map (if any) follows it.
		funcName := ""
		switch fn := call.Fun.(type) {
		case *ast.SelectorExpr:
			funcName = fn.Sel.Name
		case *ast.Ident:
			funcName = fn.Name
		}
		if !slices.Contains(cfg.FunctionNames, funcName) {
			return true
		}

		refIdx := -1
		for i, arg := range call.Args {
			if lit, ok := arg.(*ast.BasicLit); ok && lit.Kind == token.STRING {
				refIdx = i
				break
			}
		}
		if refIdx == -1 {
			// Dynamic message id; nothing can be checked statically.
			return true
		}

		msgID, attrID := splitMessageRef(extractString(call.Args[refIdx]))
		if msgID == "" {
			return true
		}

		args, literal := extractArgNames(call.Args[refIdx+1:])

		pos := fset.Position(call.Pos())
		file := pos.Filename
		if dir != "" {
			if rel, err := filepath.Rel(dir, pos.Filename); err == nil {
				file = rel
			}
		}

		requests = append(requests, validator.Request{
			Domain:      domain,
			MessageID:   msgID,
			AttributeID: attrID,
			Args:        args,
			ArgsLiteral: literal,
			File:        file,
			Line:        pos.Line,
			Column:      pos.Column,
		})
		return true
	})

	return requests
}

// splitMessageRef splits a literal message reference at the first dot into
// message and attribute identifiers. Fluent identifiers never contain
// dots, so the first dot is always the attribute separator.
func splitMessageRef(ref string) (msgID, attrID string) {
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// extractArgNames derives the supplied argument names from the call
// arguments following the message reference.
//
// A map composite literal with string-literal keys yields a statically
// known name set. Any other argument expression - a map variable, a
// function call, a spread - means the names are only known at runtime, and
// the request degrades to an id-existence check.
func extractArgNames(rest []ast.Expr) (names []string, literal bool) {
	if len(rest) == 0 {
		return []string{}, true
	}

	comp, ok := rest[0].(*ast.CompositeLit)
	if !ok || len(rest) > 1 {
		return nil, false
	}

	names = make([]string, 0, len(comp.Elts))
	for _, elt := range comp.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return nil, false
		}
		key, ok := kv.Key.(*ast.BasicLit)
		if !ok || key.Kind != token.STRING {
			// Computed keys defeat static checking.
			return nil, false
		}
		names = append(names, strings.Trim(key.Value, `"`))
	}
	return names, true
}

func extractString(expr ast.Expr) string {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING || len(lit.Value) < 2 {
		return ""
	}
	return lit.Value[1 : len(lit.Value)-1]
}

// isImportRelatedError determines whether a loader error corresponds to a
// dependency/import failure rather than a problem in the scanned source.
func isImportRelatedError(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
		"build constraints exclude all go files",
	} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

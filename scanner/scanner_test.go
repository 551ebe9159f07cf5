package scanner

import (
	"go/parser"
	"go/token"
	"reflect"
	"testing"

	"github.com/abiiranathan/fluentlint/validator"
)

func callSites(t *testing.T, src string) []validator.Request {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "handlers/inbox.go", src, 0)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	return CallSitesInFile(fset, f, "", "app", DefaultConfig)
}

func TestCallSitesInFile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []validator.Request
	}{
		{
			name: "method call without arguments",
			src: `package handlers
func f(l *Localizer) {
	l.Localize("app-title")
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "app-title",
				Args: []string{}, ArgsLiteral: true,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "method call with literal argument map",
			src: `package handlers
func f(l *Localizer, name string) {
	l.Localize("welcome", Args{"name": name})
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "welcome",
				Args: []string{"name"}, ArgsLiteral: true,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "plain call with leading localizer argument",
			src: `package handlers
func f(l *Localizer) {
	MustLocalize(l, "welcome", Args{"name": "x", "count": "y"})
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "welcome",
				Args: []string{"name", "count"}, ArgsLiteral: true,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "attribute reference",
			src: `package handlers
func f(l *Localizer) {
	l.Localize("login-input.placeholder")
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "login-input", AttributeID: "placeholder",
				Args: []string{}, ArgsLiteral: true,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "runtime argument map degrades to existence check",
			src: `package handlers
func f(l *Localizer, extra Args) {
	l.Localize("footer-note", extra)
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "footer-note",
				Args: nil, ArgsLiteral: false,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "computed map key degrades to existence check",
			src: `package handlers
func f(l *Localizer, key string) {
	l.Localize("welcome", Args{key: "x"})
}
`,
			want: []validator.Request{{
				Domain: "app", MessageID: "welcome",
				Args: nil, ArgsLiteral: false,
				File: "handlers/inbox.go", Line: 3, Column: 2,
			}},
		},
		{
			name: "dynamic message id is skipped",
			src: `package handlers
func f(l *Localizer, id string) {
	l.Localize(id)
}
`,
			want: nil,
		},
		{
			name: "unrelated calls are skipped",
			src: `package handlers
func f(l *Localizer) {
	l.Render("welcome")
	Translate("welcome")
}
`,
			want: nil,
		},
		{
			name: "multiple call-sites in order",
			src: `package handlers
func f(l *Localizer) {
	l.Localize("app-title")
	l.MustLocalize("welcome", Args{"name": "x"})
}
`,
			want: []validator.Request{
				{
					Domain: "app", MessageID: "app-title",
					Args: []string{}, ArgsLiteral: true,
					File: "handlers/inbox.go", Line: 3, Column: 2,
				},
				{
					Domain: "app", MessageID: "welcome",
					Args: []string{"name"}, ArgsLiteral: true,
					File: "handlers/inbox.go", Line: 4, Column: 2,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := callSites(t, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCallSitesCustomFunctionNames(t *testing.T) {
	src := `package handlers
func f(l *Localizer) {
	l.T("app-title")
	l.Localize("ignored")
}
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{FunctionNames: []string{"T"}}
	got := CallSitesInFile(fset, f, "", "app", cfg)
	if len(got) != 1 || got[0].MessageID != "app-title" {
		t.Errorf("expected only the T call-site, got %+v", got)
	}
}

func TestSplitMessageRef(t *testing.T) {
	tests := []struct {
		ref, msg, attr string
	}{
		{"welcome", "welcome", ""},
		{"login-input.placeholder", "login-input", "placeholder"},
		{"a.b.c", "a", "b.c"},
		{"", "", ""},
	}
	for _, tt := range tests {
		msg, attr := splitMessageRef(tt.ref)
		if msg != tt.msg || attr != tt.attr {
			t.Errorf("splitMessageRef(%q): expected (%q, %q), got (%q, %q)",
				tt.ref, tt.msg, tt.attr, msg, attr)
		}
	}
}

func TestIsImportRelatedError(t *testing.T) {
	if !isImportRelatedError(`could not import github.com/some/dep (missing metadata)`) {
		t.Error("expected import errors to be filtered")
	}
	if isImportRelatedError(`expected ';', found 'EOF'`) {
		t.Error("syntax errors must not be filtered")
	}
}

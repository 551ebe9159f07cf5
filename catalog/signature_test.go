package catalog

import (
	"reflect"
	"testing"

	"github.com/abiiranathan/fluentlint/ftl"
)

func parseResource(t *testing.T, src string) *ftl.Resource {
	t.Helper()
	res, err := ftl.Parse("test.ftl", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return res
}

func messageSignature(t *testing.T, src, id string) Signature {
	t.Helper()
	table := BuildTable("test", parseResource(t, src))
	entry, ok := table.Message(id)
	if !ok {
		t.Fatalf("message %q not found", id)
	}
	return entry.Args
}

func TestPatternSignature(t *testing.T) {
	tests := []struct {
		name string
		src  string
		id   string
		want []string
	}{
		{
			name: "no variables",
			src:  "plain = Just text.\n",
			id:   "plain",
			want: []string{},
		},
		{
			name: "single variable",
			src:  "greeting = Hello { $name }!\n",
			id:   "greeting",
			want: []string{"name"},
		},
		{
			name: "repeated variable counted once",
			src:  "echo = { $word } { $word } { $word }\n",
			id:   "echo",
			want: []string{"word"},
		},
		{
			name: "multiple variables sorted",
			src:  "pair = { $second } after { $first }\n",
			id:   "pair",
			want: []string{"first", "second"},
		},
		{
			name: "select is the union of selector and all variants",
			src: `status = { $sel ->
    [a] Uses { $onlyA }
   *[b] Uses { $onlyB }
  }
`,
			id:   "status",
			want: []string{"onlyA", "onlyB", "sel"},
		},
		{
			name: "nested select",
			src: `nested = { $outer ->
    [a] { $inner ->
        [x] { $deep }
       *[y] Two
      }
   *[b] Other
  }
`,
			id:   "nested",
			want: []string{"deep", "inner", "outer"},
		},
		{
			name: "function call arguments",
			src:  "elapsed = { NUMBER($duration, minimumFractionDigits: $digits) }\n",
			id:   "elapsed",
			want: []string{"digits", "duration"},
		},
		{
			name: "term call arguments",
			src:  "-brand = Firefox\nabout = { -brand(case: $case) }\n",
			id:   "about",
			want: []string{"case"},
		},
		{
			name: "message reference contributes nothing",
			src:  "other = Hi { $hidden }\nouter = { other } and { $visible }\n",
			id:   "outer",
			want: []string{"visible"},
		},
		{
			name: "string and number literals contribute nothing",
			src:  "lit = { \"text\" } { 42 }\n",
			id:   "lit",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := messageSignature(t, tt.src, tt.id)
			if got := sig.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected signature %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSignatureContains(t *testing.T) {
	sig := messageSignature(t, "m = { $a } { $b }\n", "m")
	if !sig.Contains("a") || !sig.Contains("b") {
		t.Error("expected signature to contain a and b")
	}
	if sig.Contains("c") {
		t.Error("did not expect signature to contain c")
	}
}

func TestAttributeSignaturesIndependent(t *testing.T) {
	src := `login = Welcome { $name }
    .placeholder = Type { $hint } here
    .title = Static title
`
	table := BuildTable("test", parseResource(t, src))
	entry, ok := table.Message("login")
	if !ok {
		t.Fatal("message login not found")
	}

	if got := entry.Args.Names(); !reflect.DeepEqual(got, []string{"name"}) {
		t.Errorf("expected message signature [name], got %v", got)
	}

	sig, ok := entry.Attribute("placeholder")
	if !ok {
		t.Fatal("attribute placeholder not found")
	}
	// The attribute's signature must not absorb the message's variables.
	if got := sig.Names(); !reflect.DeepEqual(got, []string{"hint"}) {
		t.Errorf("expected attribute signature [hint], got %v", got)
	}

	sig, ok = entry.Attribute("title")
	if !ok {
		t.Fatal("attribute title not found")
	}
	if got := sig.Names(); len(got) != 0 {
		t.Errorf("expected empty attribute signature, got %v", got)
	}

	if got := entry.AttributeIDs(); !reflect.DeepEqual(got, []string{"placeholder", "title"}) {
		t.Errorf("unexpected attribute order: %v", got)
	}
}

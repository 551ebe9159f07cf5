package catalog

import (
	"reflect"
	"testing"
)

func TestBuildTableDefinitionOrder(t *testing.T) {
	src := `zeta = Z
alpha = A
mid = M
`
	table := BuildTable("app", parseResource(t, src))

	if table.Domain != "app" {
		t.Errorf("expected domain app, got %q", table.Domain)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", table.Len())
	}
	// Definition order, not lexical order.
	want := []string{"zeta", "alpha", "mid"}
	if got := table.MessageIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestBuildTableLaterResourceOverrides(t *testing.T) {
	first := parseResource(t, "greeting = Hi { $name }\nother = O\n")
	second := parseResource(t, "greeting = Hi { $first } { $last }\n")

	table := BuildTable("app", first, second)

	entry, ok := table.Message("greeting")
	if !ok {
		t.Fatal("message greeting not found")
	}
	if got := entry.Args.Names(); !reflect.DeepEqual(got, []string{"first", "last"}) {
		t.Errorf("expected overriding signature [first last], got %v", got)
	}
	// The overridden message keeps its original position.
	if got := table.MessageIDs(); !reflect.DeepEqual(got, []string{"greeting", "other"}) {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestBuildTableSkipsTerms(t *testing.T) {
	table := BuildTable("app", parseResource(t, "-brand = Firefox\nabout = About { -brand }\n"))

	if _, ok := table.Message("brand"); ok {
		t.Error("terms must not be addressable as messages")
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
}

func TestBuildTableAttributeOnlyMessage(t *testing.T) {
	src := `login =
    .placeholder = email@example.com
`
	table := BuildTable("app", parseResource(t, src))

	entry, ok := table.Message("login")
	if !ok {
		t.Fatal("message login not found")
	}
	if entry.HasValue {
		t.Error("expected HasValue to be false")
	}
	if len(entry.Args) != 0 {
		t.Errorf("expected empty message signature, got %v", entry.Args.Names())
	}
	if _, ok := entry.Attribute("placeholder"); !ok {
		t.Error("attribute placeholder not found")
	}
}

package catalog

import "github.com/abiiranathan/fluentlint/ftl"

// Entry holds the derived signatures for one message: the message's own
// required-argument set and one set per attribute. Attribute signatures
// are computed from the attribute's own pattern only and are never merged
// with the owning message's.
type Entry struct {
	// ID is the message identifier.
	ID string
	// HasValue reports whether the message has its own pattern. A message
	// may declare only attributes.
	HasValue bool
	// Args is the signature of the message's own pattern. Empty (not nil)
	// when HasValue is false.
	Args Signature

	attrs     map[string]Signature
	attrOrder []string
}

// Attribute returns the signature of the named attribute.
func (e *Entry) Attribute(id string) (Signature, bool) {
	sig, ok := e.attrs[id]
	return sig, ok
}

// AttributeIDs returns the attribute identifiers in definition order.
func (e *Entry) AttributeIDs() []string {
	return e.attrOrder
}

// Table maps every message identifier of one domain to its signatures.
// Built once per (domain, fallback language) and read-only thereafter.
type Table struct {
	// Domain is the domain this table was built for.
	Domain string

	entries map[string]*Entry
	order   []string
}

// BuildTable derives a signature table from parsed resources. Resources
// are applied in order; a message defined again in a later resource
// overrides the earlier definition (fluent merge semantics) but keeps its
// original position in definition order.
//
// Terms are intentionally not indexed: call-sites cannot address them.
func BuildTable(domain string, resources ...*ftl.Resource) *Table {
	t := &Table{Domain: domain, entries: make(map[string]*Entry)}

	for _, res := range resources {
		for _, msg := range res.Messages {
			entry := &Entry{
				ID:       msg.ID,
				HasValue: msg.Value != nil,
				Args:     PatternSignature(msg.Value),
				attrs:    make(map[string]Signature, len(msg.Attributes)),
			}
			for _, attr := range msg.Attributes {
				if _, dup := entry.attrs[attr.ID]; !dup {
					entry.attrOrder = append(entry.attrOrder, attr.ID)
				}
				entry.attrs[attr.ID] = PatternSignature(attr.Value)
			}

			if _, exists := t.entries[msg.ID]; !exists {
				t.order = append(t.order, msg.ID)
			}
			t.entries[msg.ID] = entry
		}
	}

	return t
}

// Message looks up a message entry by identifier.
func (t *Table) Message(id string) (*Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// MessageIDs returns all message identifiers in definition order. The
// order is what keeps suggestion ranking deterministic across runs.
func (t *Table) MessageIDs() []string {
	return t.order
}

// Len returns the number of indexed messages.
func (t *Table) Len() int {
	return len(t.entries)
}

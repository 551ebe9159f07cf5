package ftl

// Resource is one parsed fluent localization file for one (domain, language)
// pair. It is immutable once loaded.
type Resource struct {
	// Domain is the resource domain this file belongs to (set by the loader).
	Domain string `json:"domain,omitempty"`
	// Language is the language tag this file was loaded for (set by the loader).
	Language string `json:"language,omitempty"`
	// Path is the file path, used only for diagnostics.
	Path string `json:"path,omitempty"`
	// Messages are the message definitions in definition order.
	Messages []*Message `json:"messages"`
	// Terms are the term definitions (`-id = ...`) in definition order.
	// Terms are private to the resource and are not addressable by call-sites.
	Terms []*Term `json:"terms,omitempty"`
}

// Message is a named, user-visible text unit. Its identifier is unique
// within one Resource (a later definition overrides an earlier one).
type Message struct {
	// ID is the message identifier.
	ID string `json:"id"`
	// Value is the message's own pattern. Nil when the message only
	// declares attributes.
	Value Pattern `json:"value,omitempty"`
	// Attributes are the named sub-patterns in definition order.
	Attributes []*Attribute `json:"attributes,omitempty"`
	// Line is the 1-based source line the definition starts on.
	Line int `json:"line"`
}

// Attribute is a named sub-pattern belonging to a Message, independently
// addressable as `message-id.attribute-id`.
type Attribute struct {
	// ID is the attribute identifier, unique within its owning message.
	ID string `json:"id"`
	// Value is the attribute's pattern.
	Value Pattern `json:"value"`
	// Line is the 1-based source line the attribute starts on.
	Line int `json:"line"`
}

// Term is a `-id = ...` definition. Terms can be referenced from other
// patterns but never from program call-sites.
type Term struct {
	ID         string       `json:"id"`
	Value      Pattern      `json:"value"`
	Attributes []*Attribute `json:"attributes,omitempty"`
	Line       int          `json:"line"`
}

// Pattern is an ordered sequence of literal text runs and placeable
// expressions. A nil pattern means "no value".
type Pattern []PatternElement

// PatternElement is either a Text run or a Placeable.
type PatternElement interface {
	patternElement()
}

// Text is a literal text run inside a pattern.
type Text struct {
	Value string `json:"value"`
}

// Placeable is an embedded expression inside a pattern, delimited by
// `{` and `}` in source.
type Placeable struct {
	Expression Expression `json:"expression"`
}

func (*Text) patternElement()      {}
func (*Placeable) patternElement() {}

// Expression is any expression that can appear inside a placeable:
// literals, references, call expressions and select expressions.
type Expression interface {
	expression()
}

// StringLiteral is a quoted string, e.g. `{ "{" }`.
type StringLiteral struct {
	Value string `json:"value"`
}

// NumberLiteral is a decimal number, e.g. `{ 3.14 }` or a variant key `[0]`.
type NumberLiteral struct {
	Value string `json:"value"`
}

// VariableReference is a `$name` reference to an externally supplied value.
// These are what signatures are made of.
type VariableReference struct {
	Name string `json:"name"`
}

// MessageReference is a reference to another message (or one of its
// attributes) within the same resource.
type MessageReference struct {
	ID        string `json:"id"`
	Attribute string `json:"attribute,omitempty"`
}

// TermReference is a `-id` reference, optionally with an attribute and
// call arguments.
type TermReference struct {
	ID        string         `json:"id"`
	Attribute string         `json:"attribute,omitempty"`
	Arguments *CallArguments `json:"arguments,omitempty"`
}

// FunctionReference is a builtin call such as `NUMBER($count)`.
type FunctionReference struct {
	ID        string         `json:"id"`
	Arguments *CallArguments `json:"arguments,omitempty"`
}

// CallArguments holds the positional and named arguments of a function or
// term call. Both kinds may themselves contain variable references.
type CallArguments struct {
	Positional []Expression     `json:"positional,omitempty"`
	Named      []*NamedArgument `json:"named,omitempty"`
}

// NamedArgument is a `name: value` call argument.
type NamedArgument struct {
	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

// SelectExpression chooses one of several variant patterns at runtime
// based on a selector value. Exactly one variant is marked as default.
type SelectExpression struct {
	Selector Expression `json:"selector"`
	Variants []*Variant `json:"variants"`
}

// Variant is one `[key] pattern` branch of a select expression.
type Variant struct {
	// Key is the variant key (an identifier or a number literal).
	Key string `json:"key"`
	// Default marks the `*[key]` fallback branch.
	Default bool `json:"default,omitempty"`
	// Value is the branch's pattern.
	Value Pattern `json:"value"`
}

func (*StringLiteral) expression()     {}
func (*NumberLiteral) expression()     {}
func (*VariableReference) expression() {}
func (*MessageReference) expression()  {}
func (*TermReference) expression()     {}
func (*FunctionReference) expression() {}
func (*SelectExpression) expression()  {}

// Package ftl parses fluent localization resources (.ftl files) into a
// tree of messages, terms and attributes, each with a pattern made of
// literal text runs and placeable expressions.
//
// The parser covers the subset of the fluent grammar that matters for
// static verification:
//   - messages (`id = pattern`) with attributes (`.attr = pattern`)
//   - terms (`-id = pattern`)
//   - multiline (block) patterns with indented continuation lines
//   - placeables: string/number literals, `$var` references, message and
//     term references, function calls with positional and named arguments,
//     and select expressions with variant branches - all arbitrarily nested
//   - comments (`#`, `##`, `###`)
//
// Line endings are normalized before parsing so a resource saved with CRLF
// produces the same tree (and therefore the same derived signatures) as one
// saved with LF.
//
// Any lexical or grammatical error aborts the parse of the whole resource
// and is returned as a *ParseError carrying the offending line and column.
// The caller treats such a resource as contributing no messages.
package ftl

import (
	"fmt"
	"strings"
)

// ParseError describes a syntax error in a fluent resource.
type ParseError struct {
	// Path is the file the error occurred in (may be empty for in-memory sources).
	Path string `json:"path,omitempty"`
	// Line is the 1-based line of the error.
	Line int `json:"line"`
	// Column is the 1-based column of the error.
	Column int `json:"column"`
	// Msg describes the error.
	Msg string `json:"message"`
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// Parse parses fluent resource text. path is recorded for diagnostics only.
func Parse(path, src string) (*Resource, error) {
	// Normalize line endings so signatures do not depend on how the file
	// was saved.
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")

	p := &parser{src: src, path: path}
	res := &Resource{Path: path}

	for p.pos < len(p.src) {
		p.skipBlankLines()
		if p.pos >= len(p.src) {
			break
		}

		c := p.src[p.pos]
		switch {
		case c == '#':
			p.skipCommentLine()

		case isIdentStart(c):
			msg, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			res.Messages = append(res.Messages, msg)

		case c == '-' && p.pos+1 < len(p.src) && isIdentStart(p.src[p.pos+1]):
			term, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			res.Terms = append(res.Terms, term)

		default:
			return nil, p.errf(p.pos, "expected a message, term or comment")
		}
	}

	return res, nil
}

type parser struct {
	src  string
	pos  int
	path string
}

// errf builds a *ParseError for the given byte offset.
func (p *parser) errf(off int, format string, args ...any) error {
	if off > len(p.src) {
		off = len(p.src)
	}
	line := 1 + strings.Count(p.src[:off], "\n")
	col := off - strings.LastIndexByte(p.src[:off], '\n')
	return &ParseError{
		Path:   p.path,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) line() int {
	return 1 + strings.Count(p.src[:p.pos], "\n")
}

// ─── entries ────────────────────────────────────────────────────────────────

func (p *parser) parseMessage() (*Message, error) {
	line := p.line()
	id := p.identifier()

	p.skipSpaces()
	if !p.consume('=') {
		return nil, p.errf(p.pos, "expected %q after message identifier %q", "=", id)
	}
	p.skipSpaces()

	value, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	if value == nil && len(attrs) == 0 {
		return nil, p.errf(p.pos, "message %q has neither a value nor attributes", id)
	}

	return &Message{ID: id, Value: value, Attributes: attrs, Line: line}, nil
}

func (p *parser) parseTerm() (*Term, error) {
	line := p.line()
	p.pos++ // leading '-'
	id := p.identifier()

	p.skipSpaces()
	if !p.consume('=') {
		return nil, p.errf(p.pos, "expected %q after term identifier %q", "=", "-"+id)
	}
	p.skipSpaces()

	value, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, p.errf(p.pos, "term %q has no value", "-"+id)
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	return &Term{ID: id, Value: value, Attributes: attrs, Line: line}, nil
}

// parseAttributes consumes consecutive indented `.attr = pattern` lines.
func (p *parser) parseAttributes() ([]*Attribute, error) {
	var attrs []*Attribute

	for {
		save := p.pos
		if !p.consume('\n') {
			break
		}
		p.skipSpaces()
		if p.pos >= len(p.src) || p.src[p.pos] != '.' || p.pos == save+1 {
			// Not an indented attribute line; back out.
			p.pos = save
			break
		}
		p.pos++ // '.'

		line := p.line()
		if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
			return nil, p.errf(p.pos, "expected attribute identifier after %q", ".")
		}
		id := p.identifier()

		p.skipSpaces()
		if !p.consume('=') {
			return nil, p.errf(p.pos, "expected %q after attribute identifier %q", "=", "."+id)
		}
		p.skipSpaces()

		value, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, p.errf(p.pos, "attribute %q has no value", "."+id)
		}

		attrs = append(attrs, &Attribute{ID: id, Value: value, Line: line})
	}

	return attrs, nil
}

// ─── patterns ───────────────────────────────────────────────────────────────

// parsePattern reads pattern elements until the pattern ends: at EOF, at a
// line that is not an indented continuation, or at a line whose first
// non-space character introduces an attribute (`.`), a variant (`[`, `*`)
// or closes a surrounding select expression (`}`).
//
// Returns nil when the pattern has no content at all.
func (p *parser) parsePattern() (Pattern, error) {
	var elems []PatternElement
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			elems = append(elems, &Text{Value: text.String()})
			text.Reset()
		}
	}

loop:
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '{':
			flush()
			expr, err := p.parsePlaceable()
			if err != nil {
				return nil, err
			}
			elems = append(elems, &Placeable{Expression: expr})

		case '}':
			return nil, p.errf(p.pos, "unbalanced closing brace in pattern")

		case '\n':
			cont, next := p.continuationAfterNewline()
			if !cont {
				break loop
			}
			if text.Len() > 0 || len(elems) > 0 {
				text.WriteByte('\n')
			}
			p.pos = next

		default:
			text.WriteByte(c)
			p.pos++
		}
	}

	flush()
	if len(elems) == 0 {
		return nil, nil
	}
	return elems, nil
}

// continuationAfterNewline decides whether the line following the newline
// at p.pos continues the current pattern. It does not move p.pos; on a
// continuation it returns the offset of the line's first content character.
func (p *parser) continuationAfterNewline() (bool, int) {
	q := p.pos + 1 // after '\n'

	// Blank lines inside a block pattern are allowed; scan past them.
	for {
		i := q
		for i < len(p.src) && p.src[i] == ' ' {
			i++
		}
		if i < len(p.src) && p.src[i] == '\n' {
			q = i + 1
			continue
		}

		if i >= len(p.src) || i == q {
			// EOF, or a line starting in column one: a new entry.
			return false, 0
		}
		switch p.src[i] {
		case '.', '[', '*', '}':
			// Attribute, variant, or the close of a surrounding select.
			return false, 0
		}
		return true, i
	}
}

// ─── placeables and expressions ─────────────────────────────────────────────

// parsePlaceable parses `{ expression }`, where the expression may be a
// select expression spanning multiple lines.
func (p *parser) parsePlaceable() (Expression, error) {
	open := p.pos
	p.pos++ // '{'
	p.skipBlank()

	expr, err := p.parseInlineExpression()
	if err != nil {
		return nil, err
	}
	p.skipBlank()

	if strings.HasPrefix(p.src[p.pos:], "->") {
		p.pos += 2
		variants, err := p.parseVariants()
		if err != nil {
			return nil, err
		}
		expr = &SelectExpression{Selector: expr, Variants: variants}
		p.skipBlank()
	}

	if !p.consume('}') {
		return nil, p.errf(open, "unclosed placeable")
	}
	return expr, nil
}

// parseVariants parses the `[key] pattern` branches of a select expression,
// up to (but not consuming) the closing brace.
func (p *parser) parseVariants() ([]*Variant, error) {
	var variants []*Variant
	defaults := 0

	for {
		p.skipBlank()
		if p.pos >= len(p.src) || p.src[p.pos] == '}' {
			break
		}

		def := false
		if p.src[p.pos] == '*' {
			def = true
			defaults++
			p.pos++
		}
		if !p.consume('[') {
			return nil, p.errf(p.pos, "expected variant key")
		}
		p.skipSpaces()
		key, err := p.variantKey()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if !p.consume(']') {
			return nil, p.errf(p.pos, "unclosed variant key %q", key)
		}
		p.skipSpaces()

		value, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, p.errf(p.pos, "variant %q has no value", key)
		}

		variants = append(variants, &Variant{Key: key, Default: def, Value: value})
	}

	if len(variants) == 0 {
		return nil, p.errf(p.pos, "select expression has no variants")
	}
	if defaults != 1 {
		return nil, p.errf(p.pos, "select expression must have exactly one default variant, found %d", defaults)
	}
	return variants, nil
}

func (p *parser) variantKey() (string, error) {
	if p.pos < len(p.src) && isIdentStart(p.src[p.pos]) {
		return p.identifier(), nil
	}
	if num := p.number(); num != "" {
		return num, nil
	}
	return "", p.errf(p.pos, "expected an identifier or number as variant key")
}

// parseInlineExpression parses one expression inside a placeable.
func (p *parser) parseInlineExpression() (Expression, error) {
	if p.pos >= len(p.src) {
		return nil, p.errf(p.pos, "expected an expression")
	}

	switch c := p.src[p.pos]; {
	case c == '"':
		return p.stringLiteral()

	case c >= '0' && c <= '9':
		return &NumberLiteral{Value: p.number()}, nil

	case c == '-' && p.pos+1 < len(p.src) && p.src[p.pos+1] >= '0' && p.src[p.pos+1] <= '9':
		return &NumberLiteral{Value: p.number()}, nil

	case c == '$':
		p.pos++
		if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
			return nil, p.errf(p.pos, "expected variable identifier after %q", "$")
		}
		return &VariableReference{Name: p.identifier()}, nil

	case c == '-' && p.pos+1 < len(p.src) && isIdentStart(p.src[p.pos+1]):
		p.pos++
		ref := &TermReference{ID: p.identifier()}
		if p.consume('.') {
			if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
				return nil, p.errf(p.pos, "expected attribute identifier after %q", ".")
			}
			ref.Attribute = p.identifier()
		}
		if p.pos < len(p.src) && p.src[p.pos] == '(' {
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			ref.Arguments = args
		}
		return ref, nil

	case isIdentStart(c):
		id := p.identifier()
		if p.pos < len(p.src) && p.src[p.pos] == '(' {
			// A callable identifier is a builtin function reference.
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			return &FunctionReference{ID: id, Arguments: args}, nil
		}
		ref := &MessageReference{ID: id}
		if p.consume('.') {
			if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
				return nil, p.errf(p.pos, "expected attribute identifier after %q", ".")
			}
			ref.Attribute = p.identifier()
		}
		return ref, nil

	case c == '{':
		// Nested placeable.
		return p.parsePlaceable()
	}

	return nil, p.errf(p.pos, "expected an expression")
}

// parseCallArguments parses `( expr, name: expr, ... )`.
func (p *parser) parseCallArguments() (*CallArguments, error) {
	open := p.pos
	p.pos++ // '('
	args := &CallArguments{}

	for {
		p.skipBlank()
		if p.pos >= len(p.src) {
			return nil, p.errf(open, "unclosed argument list")
		}
		if p.consume(')') {
			return args, nil
		}

		expr, err := p.parseInlineExpression()
		if err != nil {
			return nil, err
		}
		p.skipBlank()

		// `name: value` marks a named argument; the name parses as a bare
		// message reference.
		if ref, ok := expr.(*MessageReference); ok && ref.Attribute == "" && p.consume(':') {
			p.skipBlank()
			value, err := p.parseInlineExpression()
			if err != nil {
				return nil, err
			}
			args.Named = append(args.Named, &NamedArgument{Name: ref.ID, Value: value})
			p.skipBlank()
		} else {
			args.Positional = append(args.Positional, expr)
		}

		if p.consume(',') {
			continue
		}
		if !p.consume(')') {
			return nil, p.errf(open, "unclosed argument list")
		}
		return args, nil
	}
}

// ─── lexical helpers ────────────────────────────────────────────────────────

func (p *parser) stringLiteral() (Expression, error) {
	open := p.pos
	p.pos++ // '"'
	var sb strings.Builder

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return &StringLiteral{Value: sb.String()}, nil
		case '\n':
			return nil, p.errf(open, "unterminated string literal")
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, p.errf(open, "unterminated string literal")
			}
			sb.WriteByte(p.src[p.pos])
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errf(open, "unterminated string literal")
}

func (p *parser) identifier() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) number() string {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		q := p.pos + 1
		for q < len(p.src) && p.src[q] >= '0' && p.src[q] <= '9' {
			q++
		}
		if q > p.pos+1 {
			p.pos = q
		}
	}
	if p.pos == start || (p.pos == start+1 && p.src[start] == '-') {
		p.pos = start
		return ""
	}
	return p.src[start:p.pos]
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// skipSpaces skips inline spaces only.
func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// skipBlank skips spaces and newlines; used inside placeables, where
// expressions may span lines freely.
func (p *parser) skipBlank() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

// skipBlankLines skips lines that contain nothing but spaces.
func (p *parser) skipBlankLines() {
	for p.pos < len(p.src) {
		i := p.pos
		for i < len(p.src) && p.src[i] == ' ' {
			i++
		}
		if i < len(p.src) && p.src[i] == '\n' {
			p.pos = i + 1
			continue
		}
		return
	}
}

func (p *parser) skipCommentLine() {
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.pos++
	}
	if p.pos < len(p.src) {
		p.pos++ // '\n'
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

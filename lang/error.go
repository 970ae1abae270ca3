package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax           = NewError("syntax error")
	ErrUnboundName      = NewError("unbound name")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrInvalidNode      = NewError("invalid node")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>", or "" depending on which are set.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
// Errors produced by [Error.Wrap] and [Error.With] share their message with
// the sentinel and match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.msg != "" && t.msg == e.msg && t.err == nil
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError reports template source that no grammar production accepts.
type SyntaxError struct {
	Pos      Position
	Found    Token
	Expected []Kind
	Reason   string // Optional detail, such as "void element cannot have content"
	Source   string // The original source input, if known
	Cause    error  // Optional sentinel further classifying the error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("syntax error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": ")

	if e.Reason != "" {
		buf.WriteString(e.Reason)
	} else {
		buf.WriteString("unexpected ")
		buf.WriteString(e.Found.String())
	}

	if exp := e.ExpectedStrings(); len(exp) > 0 {
		buf.WriteString(", expected ")
		buf.WriteString(strings.Join(exp, " or "))
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString(":\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Unwrap returns [ErrSyntax] and the Cause, if any.
func (e *SyntaxError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrSyntax, e.Cause}
	}

	return []error{ErrSyntax}
}

// ExpectedStrings returns the quoted, sorted names of the expected tokens.
func (e *SyntaxError) ExpectedStrings() []string {
	exp := make([]string, 0, len(e.Expected))
	for _, k := range e.Expected {
		exp = append(exp, strconv.Quote(k.String()))
	}

	slices.Sort(exp)

	return slices.Compact(exp)
}

// CaretIndent returns the whitespace that aligns a marker printed below the
// offending source line with the error column. Tabs in the line are kept so
// the marker lines up however the terminal expands them, and wide runes are
// padded to their display width.
func (e *SyntaxError) CaretIndent() string {
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line <= 0 || e.Pos.Line > len(lines) || e.Pos.Column <= 1 {
		return ""
	}

	var sb strings.Builder

	n := e.Pos.Column - 1
	for _, r := range lines[e.Pos.Line-1] {
		if n == 0 {
			break
		}

		n--

		if r == '\t' {
			sb.WriteRune('\t')

			continue
		}

		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	// Past the end of the line, e.g. an unexpected end of input.
	sb.WriteString(strings.Repeat(" ", n))

	return sb.String()
}

// Snippet returns the offending source line followed by a caret marker under
// the error column, or "" if the source is unknown.
func (e *SyntaxError) Snippet() string {
	lines := strings.Split(e.Source, "\n")

	if e.Source == "" || e.Pos.Line <= 0 || e.Pos.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Pos.Line))
	src.WriteString(" | ")
	src.WriteString(lines[e.Pos.Line-1])
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Pos.Line))+5)
	padding += e.CaretIndent()

	src.WriteString(padding + "^\n")

	return src.String()
}

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrSyntax.msg),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.String("found", e.Found.String()),
	}

	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}

	if exp := e.ExpectedStrings(); len(exp) > 0 {
		attrs = append(attrs, slog.String("expected", strings.Join(exp, ", ")))
	}

	return slog.GroupValue(attrs...)
}

// UnboundNameError reports a [Binding] with no value in the render
// [Context].
type UnboundNameError struct {
	Name        string
	Suggestions []string // Close matches among the bound names, best first
}

// Error implements the error interface.
func (e *UnboundNameError) Error() string {
	msg := "unbound name " + strconv.Quote(e.Name)

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = strconv.Quote(s)
		}

		msg += " (did you mean " + strings.Join(quoted, ", ") + "?)"
	}

	return msg
}

// Unwrap returns [ErrUnboundName].
func (e *UnboundNameError) Unwrap() error { return ErrUnboundName }

// LogValue implements slog.LogValuer.
func (e *UnboundNameError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrUnboundName.msg),
		slog.String("name", e.Name),
	}

	if len(e.Suggestions) > 0 {
		attrs = append(attrs, slog.Any("suggestions", e.Suggestions))
	}

	return slog.GroupValue(attrs...)
}

package cmd

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/hyprtxt/lang"
)

// diagnosticStyles are built per writer so that color is only emitted when w
// is a terminal.
type diagnosticStyles struct {
	label, location, gutter, source, caret, hint lipgloss.Style
}

func makeDiagnosticStyles(w io.Writer) diagnosticStyles {
	r := lipgloss.NewRenderer(w)

	return diagnosticStyles{
		label:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		location: r.NewStyle().Bold(true),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("8")),
		source:   r.NewStyle(),
		caret:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		hint:     r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Diagnose writes a styled report of err to w if it is a template syntax
// error or an unbound name, and reports whether it did.
//
// Syntax errors print the offending source line with a caret under the
// error column:
//
//	error: page.hx:1:7: unexpected "}", expected identifier
//	  1 | div { }
//	            ^
func Diagnose(w io.Writer, err error) bool {
	var (
		serr   *lang.SyntaxError
		uerr   *lang.UnboundNameError
		file   string
		srcErr *SourceError
	)

	if errors.As(err, &srcErr) {
		file = srcErr.File
	}

	switch {
	case errors.As(err, &serr):
		diagnoseSyntax(w, makeDiagnosticStyles(w), file, serr)

	case errors.As(err, &uerr):
		diagnoseUnbound(w, makeDiagnosticStyles(w), file, uerr)

	default:
		return false
	}

	return true
}

func diagnoseSyntax(w io.Writer, st diagnosticStyles, file string, e *lang.SyntaxError) {
	loc := e.Pos.String()
	if file != "" {
		loc = file + ":" + loc
	}

	msg := e.Reason
	if msg == "" {
		msg = "unexpected " + e.Found.String()
	}

	if exp := e.ExpectedStrings(); len(exp) > 0 {
		msg += ", expected " + strings.Join(exp, " or ")
	}

	var sb strings.Builder

	sb.WriteString(st.label.Render("error:"))
	sb.WriteByte(' ')
	sb.WriteString(st.location.Render(loc + ":"))
	sb.WriteByte(' ')
	sb.WriteString(msg)
	sb.WriteByte('\n')

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > 0 && e.Pos.Line <= len(lines) {
		num := strconv.Itoa(e.Pos.Line)

		sb.WriteString(st.gutter.Render("  " + num + " |"))
		sb.WriteByte(' ')
		sb.WriteString(st.source.Render(lines[e.Pos.Line-1]))
		sb.WriteByte('\n')

		sb.WriteString(strings.Repeat(" ", len(num)+5))
		sb.WriteString(e.CaretIndent())
		sb.WriteString(st.caret.Render("^"))
		sb.WriteByte('\n')
	}

	_, _ = io.WriteString(w, sb.String())
}

func diagnoseUnbound(w io.Writer, st diagnosticStyles, file string, e *lang.UnboundNameError) {
	var sb strings.Builder

	sb.WriteString(st.label.Render("error:"))
	sb.WriteByte(' ')

	if file != "" {
		sb.WriteString(st.location.Render(file + ":"))
		sb.WriteByte(' ')
	}

	sb.WriteString("unbound name " + strconv.Quote(e.Name))
	sb.WriteByte('\n')

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = strconv.Quote(s)
		}

		sb.WriteString("  ")
		sb.WriteString(st.hint.Render("did you mean " + strings.Join(quoted, ", ") + "?"))
		sb.WriteByte('\n')
	}

	_, _ = io.WriteString(w, sb.String())
}

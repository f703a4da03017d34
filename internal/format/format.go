// Package format provides output formatting utilities for CLI display.
//
// Centralises presentation so that command implementations only decide what
// to print. Lists come out either as plain lines, one link per line, or as a
// markdown bullet list rendered with glamour for terminals.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/mystuff/internal/link"
)

// Render modes accepted by Render. They mirror the list.render config key.
const (
	ModeAuto     = "auto"
	ModePlain    = "plain"
	ModeMarkdown = "markdown"
)

// Modes lists every render mode.
func Modes() []string {
	return []string{ModeAuto, ModePlain, ModeMarkdown}
}

// Line formats a single link as "url - description [t1, t2]". The
// description and tag parts are omitted when empty.
func Line(l link.Link) string {
	var b strings.Builder
	b.WriteString(l.URL)
	if l.Description != "" {
		b.WriteString(" - ")
		b.WriteString(l.Description)
	}
	if len(l.Tags) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(l.Tags, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// List prints links in simple list format.
func List(w io.Writer, links []link.Link) error {
	for _, l := range links {
		if _, err := fmt.Fprintln(w, Line(l)); err != nil {
			return err
		}
	}
	return nil
}

// Tags prints one tag per line.
func Tags(w io.Writer, tags []string) error {
	for _, t := range tags {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

var mdEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, "\n", " ")

// Markdown returns links as a markdown bullet list.
func Markdown(links []link.Link) string {
	var b strings.Builder
	b.WriteString("# Links\n\n")
	for _, l := range links {
		if l.Description != "" {
			fmt.Fprintf(&b, "- [%s](<%s>)", mdEscaper.Replace(l.Description), l.URL)
		} else {
			fmt.Fprintf(&b, "- <%s>", l.URL)
		}
		for _, t := range l.Tags {
			fmt.Fprintf(&b, " `%s`", t)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render prints links according to mode. Auto renders markdown only when
// tty is true; an unknown mode is treated as plain.
func Render(w io.Writer, links []link.Link, mode string, tty bool) error {
	md := mode == ModeMarkdown || (mode == ModeAuto && tty)
	if !md {
		return List(w, links)
	}
	out, err := glamour.Render(Markdown(links), "dark")
	if err != nil {
		// Fall back to raw markdown if rendering fails
		_, err = io.WriteString(w, Markdown(links))
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

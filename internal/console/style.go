// Package console renders user-facing status lines, progress, and prompts.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

// Arrow marks the active version in listings.
const Arrow = "→"

// Styles colors the parts of a status line. Color output follows fatih/color's
// global NoColor switch, so redirected output stays plain.
type Styles struct {
	Label    *color.Color
	Version  *color.Color
	Target   *color.Color
	Success  *color.Color
	Warn     *color.Color
	Error    *color.Color
	Artifact *color.Color
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Label:    color.New(color.FgMagenta, color.Bold),
		Version:  color.New(color.FgCyan, color.Bold),
		Target:   color.New(color.FgWhite, color.Bold),
		Success:  color.New(color.FgGreen, color.Bold),
		Warn:     color.New(color.FgYellow),
		Error:    color.New(color.FgRed, color.Bold),
		Artifact: color.New(color.Italic),
	}
}

// Printer writes styled status lines prefixed with the tool label.
type Printer struct {
	Out    io.Writer
	Label  string
	Styles Styles
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out, Label: "compact", Styles: DefaultStyles()}
}

func (p *Printer) label() string {
	return p.Styles.Label.Sprint(p.Label) + ": "
}

// Linef writes a labelled line built from format.
func (p *Printer) Linef(format string, args ...any) {
	_, _ = fmt.Fprintf(p.Out, "%s%s\n", p.label(), fmt.Sprintf(format, args...))
}

// Version renders v in the version style.
func (p *Printer) Version(v version.Version) string {
	return p.Styles.Version.Sprint(v.String())
}

// Target renders t in the target style.
func (p *Printer) Target(t platform.Target) string {
	return p.Styles.Target.Sprint(t.String())
}

// Success renders s in the success style.
func (p *Printer) Success(s string) string {
	return p.Styles.Success.Sprint(s)
}

// Warn renders s in the warning style.
func (p *Printer) Warn(s string) string {
	return p.Styles.Warn.Sprint(s)
}

// Artifact renders s in the artifact style.
func (p *Printer) Artifact(s string) string {
	return p.Styles.Artifact.Sprint(s)
}

// Status writes "<label>: <target> -- <left> -- <right>".
func (p *Printer) Status(target platform.Target, left string, right string) {
	p.Linef("%s -- %s -- %s", p.Target(target), left, right)
}

// ListItem writes one version of a listing, marking the active one.
func (p *Printer) ListItem(v version.Version, active bool) {
	if active {
		_, _ = fmt.Fprintf(p.Out, "%s %s\n", p.Styles.Success.Sprint(Arrow), p.Version(v))
		return
	}
	_, _ = fmt.Fprintf(p.Out, "  %s\n", v)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/schrockblock/recipes/internal/fetch"
)

// table buffers rows and renders them without borders.
type table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

func newTable(w io.Writer, headers ...string) *table {
	t := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	return &table{table: t, header: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	t.table.Header(header...)
	if err := t.table.Bulk(t.rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := t.table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// printer writes human output, colored when the terminal allows it.
type printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func newPrinter(out, errOut io.Writer, noColor bool) *printer {
	return &printer{out: out, err: errOut, useColors: resolveColors(noColor)}
}

// resolveColors honours --no-color, NO_COLOR and dumb terminals; otherwise
// it defers to fatih/color's own TTY detection.
func resolveColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return !color.NoColor
}

func (p *printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Error prints a red error line to stderr.
func (p *printer) Error(format string, args ...any) {
	if p.useColors {
		p.paint(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Alert prints a classified request failure the way the browser modal
// shows it: title first, then the message.
func (p *printer) Alert(a fetch.Alert) {
	if p.useColors {
		p.paint(color.FgRed, color.Bold).Fprintf(p.err, "✗ %s\n", a.Title)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", a.Title)
	}
	fmt.Fprintf(p.err, "  %s\n", a.Message)
}

// Warning prints a yellow notice to stderr.
func (p *printer) Warning(format string, args ...any) {
	if p.useColors {
		p.paint(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Println prints a plain line to stdout.
func (p *printer) Println(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Heading prints a bold section title.
func (p *printer) Heading(title string) {
	p.paint(color.Bold).Fprintln(p.out, title)
}

func (p *printer) Bold(s string) string {
	return p.paint(color.Bold).Sprint(s)
}

func (p *printer) Dim(s string) string {
	return p.paint(color.Faint).Sprint(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

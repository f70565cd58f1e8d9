package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type TableStyle int

const (
	// StyleHeader draws only a rule under the header row.
	StyleHeader TableStyle = iota
	// StyleBoxed draws borders around every cell.
	StyleBoxed
)

type Table struct {
	Style   TableStyle
	Headers []string
	Rows    [][]string
}

func (t *Table) widths() []int {
	colWidths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		colWidths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) && utf8.RuneCountInString(cell) > colWidths[i] {
				colWidths[i] = utf8.RuneCountInString(cell)
			}
		}
	}
	return colWidths
}

// Draw writes the table to w. Cells are centred in their columns.
func (t *Table) Draw(w io.Writer) error {
	colWidths := t.widths()

	var b strings.Builder
	switch t.Style {
	case StyleBoxed:
		border := rule(colWidths, "+", "-")
		b.WriteString(border)
		b.WriteString(boxedLine(colWidths, t.Headers))
		b.WriteString(rule(colWidths, "+", "="))
		for _, row := range t.Rows {
			b.WriteString(boxedLine(colWidths, row))
			b.WriteString(border)
		}
	default:
		b.WriteString(plainLine(colWidths, t.Headers))
		// the rule spans every column and separator
		total := 3 * (len(colWidths) - 1)
		for _, cw := range colWidths {
			total += cw
		}
		b.WriteString(strings.Repeat("=", max(total, 0)) + "\n")
		for _, row := range t.Rows {
			b.WriteString(plainLine(colWidths, row))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func rule(colWidths []int, corner, fill string) string {
	var b strings.Builder
	b.WriteString(corner)
	for _, cw := range colWidths {
		b.WriteString(strings.Repeat(fill, cw+2))
		b.WriteString(corner)
	}
	b.WriteString("\n")
	return b.String()
}

func boxedLine(colWidths []int, cells []string) string {
	var b strings.Builder
	b.WriteString("|")
	for i, cw := range colWidths {
		fmt.Fprintf(&b, " %s |", center(cellAt(cells, i), cw))
	}
	b.WriteString("\n")
	return b.String()
}

func plainLine(colWidths []int, cells []string) string {
	parts := make([]string, len(colWidths))
	for i, cw := range colWidths {
		parts[i] = center(cellAt(cells, i), cw)
	}
	return strings.TrimRight(strings.Join(parts, "   "), " ") + "\n"
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// FormatNumber renders an optional value, blank when absent.
func FormatNumber(n *Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}

package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/digirain/internal/rain"
)

type cellKind int

const (
	kindBlank cellKind = iota
	kindBody
	kindHead
)

// Renderer turns a frame into one string. Consecutive cells of the same kind
// share a single styled run, so a frame costs a handful of escape sequences
// per row instead of one per cell.
type Renderer struct {
	head lipgloss.Style
	body lipgloss.Style
}

// NewRenderer builds styles on r. A nil r uses the default renderer for stdout.
func NewRenderer(r *lipgloss.Renderer) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		head: r.NewStyle().Bold(true).Foreground(HeadColor),
		body: r.NewStyle().Foreground(BodyColor),
	}
}

func (r *Renderer) Head() lipgloss.Style { return r.head }
func (r *Renderer) Body() lipgloss.Style { return r.body }

func kindAt(f *rain.Frame, col, row int) cellKind {
	switch {
	case f.At(col, row) == rain.Blank:
		return kindBlank
	case f.IsHead(col, row):
		return kindHead
	default:
		return kindBody
	}
}

// Render returns the frame one row per line, joined by newlines.
func (r *Renderer) Render(f *rain.Frame) string {
	var b strings.Builder
	run := make([]rune, 0, f.Cols)
	for row := 0; row < f.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		run = run[:0]
		kind := kindBlank
		for col := 0; col < f.Cols; col++ {
			k := kindAt(f, col, row)
			if k != kind && len(run) > 0 {
				b.WriteString(r.paint(kind, run))
				run = run[:0]
			}
			kind = k
			run = append(run, f.At(col, row))
		}
		if len(run) > 0 {
			b.WriteString(r.paint(kind, run))
		}
	}
	return b.String()
}

func (r *Renderer) paint(kind cellKind, run []rune) string {
	switch kind {
	case kindHead:
		return r.head.Render(string(run))
	case kindBody:
		return r.body.Render(string(run))
	}
	return string(run)
}

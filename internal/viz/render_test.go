package viz

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorRenderer() *Renderer {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.ANSI)
	return NewRenderer(lr)
}

func advanced(t *testing.T, cols, rows, ticks int) (*rain.Frame, int) {
	t.Helper()
	eng := rain.New(cols, rows, rain.WithSeed(4))
	id, err := eng.Inject(3, 5, 1.0)
	require.NoError(t, err)
	var f *rain.Frame
	for range ticks {
		f = eng.Advance()
	}
	return f, id
}

func TestRenderMatchesFrameText(t *testing.T) {
	f, _ := advanced(t, 8, 6, 3)

	out := colorRenderer().Render(f)

	assert.Equal(t, f.String(), ansi.Strip(out))
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestRenderStylesHeadAndBody(t *testing.T) {
	f, id := advanced(t, 8, 6, 3) // head at row 3, body rows 0..2
	r := colorRenderer()

	out := r.Render(f)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)

	head := string(rain.Glyph(id, 3, 3))
	assert.Contains(t, lines[3], r.Head().Render(head))
	for row := 0; row < 3; row++ {
		body := string(rain.Glyph(id, 3, row))
		assert.Contains(t, lines[row], r.Body().Render(body), "row %d", row)
		assert.NotContains(t, lines[row], r.Head().Render(body), "row %d", row)
	}
	assert.NotEqual(t, r.Head().Render("x"), r.Body().Render("x"))
}

func TestRenderBlankCellsArePlain(t *testing.T) {
	f := rain.NewFrame(5, 3)
	out := colorRenderer().Render(f)
	assert.Equal(t, "     \n     \n     ", out)
}

func TestRenderGroupsRuns(t *testing.T) {
	f := rain.NewFrame(6, 1)
	f.Set(1, 0, 'a')
	f.Set(2, 0, 'b')
	f.Set(3, 0, 'c')
	f.MarkHead(3, 0)
	r := colorRenderer()

	out := r.Render(f)

	assert.Equal(t, " "+r.Body().Render("ab")+r.Head().Render("c")+"  ", out)
}

func TestRenderPlainProfile(t *testing.T) {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.Ascii)
	f, _ := advanced(t, 8, 6, 2)

	assert.Equal(t, f.String(), NewRenderer(lr).Render(f))
}

package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/digirain/internal/sim"
)

// Plot draws live stream counts per tick. Fewer than two samples plot nothing.
func Plot(live []int, width, height int, caption string) string {
	if len(live) < 2 {
		return ""
	}
	data := make([]float64, len(live))
	for i, v := range live {
		data[i] = float64(v)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// Summary lists the counters of a run followed by its metrics in name order.
func Summary(res *sim.Result) string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("ticks", fmt.Sprintf("%d", res.Ticks))
	row("spawned", fmt.Sprintf("%d", res.Spawned))
	row("retired", fmt.Sprintf("%d", res.Retired))
	row("peak", fmt.Sprintf("%d", res.Peak))
	if res.Resizes > 0 {
		row("resizes", fmt.Sprintf("%d", res.Resizes))
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		s.WriteString("\n" + captionStyle.Render("metrics") + "\n")
	}
	for _, name := range names {
		row(name, fmt.Sprintf("%.4f", res.Metrics[name]))
	}
	return s.String()
}

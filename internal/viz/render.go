package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/paramsynth/internal/analysis"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/storage"
)

const barWidth = 30

func metric(label string, value any) string {
	return MetricLabel.Render(fmt.Sprintf("%-16s", label)) + MetricValue.Render(fmt.Sprint(value))
}

// RenderSummary renders the metadata of one run.
func RenderSummary(meta *storage.RunMetadata) string {
	lines := []string{
		HeaderStyle.Render(meta.ID),
		metric("model", meta.Model),
		metric("domain", fmt.Sprintf("(%g, %g)", meta.Low, meta.High)),
		metric("states", meta.States),
		metric("edges", meta.Edges),
		metric("pivot", meta.Pivot),
		metric("parallel", meta.Parallel),
		metric("iterations", meta.Iterations),
		metric("components", meta.Components),
		metric("max attractors", meta.MaxAttractors),
		metric("elapsed", fmt.Sprintf("%.2fms", meta.ElapsedMillis)),
		metric("created", meta.Timestamp.Format("2006-01-02 15:04:05")),
	}
	return strings.Join(lines, "\n")
}

// RenderBands renders one line per count level with its share of the domain.
func RenderBands(bands []analysis.Band) string {
	if len(bands) == 0 {
		return Subtle.Render("no attractors")
	}
	var b strings.Builder
	for _, band := range bands {
		style := CountStyle(band.Attractors)
		fmt.Fprintf(&b, "%s %s %s  %s\n",
			style.Render(fmt.Sprintf("%3d", band.Attractors)),
			ShareBar(band.Share, barWidth, style),
			MetricValue.Render(fmt.Sprintf("%5.1f%%", 100*band.Share)),
			Subtle.Render(band.Colors.String()),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderComponents lists up to limit components, largest tag first. A limit
// of 0 lists all of them.
func RenderComponents(components []storage.ComponentRecord, limit int) string {
	if len(components) == 0 {
		return Subtle.Render("no components")
	}
	shown := components
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var b strings.Builder
	for i, c := range shown {
		states := make([]int, 0, len(c.States))
		for s := range c.States {
			states = append(states, s)
		}
		slices.Sort(states)
		fmt.Fprintf(&b, "%s %s %s\n",
			MetricLabel.Render(fmt.Sprintf("#%-3d", i)),
			MetricValue.Render(fmt.Sprintf("%-24s", formatStates(states))),
			Subtle.Render(fmt.Sprintf("tag %s  volume %.4g", formatSpans(c.Tag), c.Volume)),
		)
	}
	if len(shown) < len(components) {
		fmt.Fprintf(&b, "%s\n", Subtle.Render(fmt.Sprintf("... %d more", len(components)-len(shown))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Plot draws the attractor count over the parameter axis.
func Plot(points []analysis.SweepPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	caption := fmt.Sprintf("attractors over p in [%g, %g]", points[0].Param, points[len(points)-1].Param)
	return asciigraph.Plot(analysis.Series(points),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

func formatStates(states []int) string {
	const shown = 6
	parts := make([]string, 0, shown+1)
	for i, s := range states {
		if i == shown {
			parts = append(parts, fmt.Sprintf("+%d", len(states)-shown))
			break
		}
		parts = append(parts, fmt.Sprint(s))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatSpans(spans []storage.Span) string {
	x := make(interval.Set, 0, 2*len(spans))
	for _, s := range spans {
		x = append(x, s[0], s[1])
	}
	return x.String()
}

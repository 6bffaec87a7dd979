// Package render draws pipeline state for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trackit/internal/pipeline"
	"trackit/internal/provider"
	"trackit/internal/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	symbolStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// chartWidth is the width of the longest bar.
const chartWidth = 30

// Candidates lists resolver suggestions, one per line.
func Candidates(entries []provider.CatalogEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("no matches")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s", symbolStyle.Render(fmt.Sprintf("%-8s", e.Symbol)), e.FullName)
	}
	return b.String()
}

// Metrics renders the snapshot block. Crypto shows market cap when known.
func Metrics(class provider.AssetClass, m view.DisplayMetrics) string {
	if !m.Available {
		return dimStyle.Render("no market data")
	}
	delta := gainStyle
	if m.Direction == view.Negative {
		delta = lossStyle
	}
	rows := [][2]string{
		{"Current Price", m.CurrentPriceText},
		{"Open Price", m.OpenPriceText},
		{"24H Change", delta.Render(m.DeltaText)},
	}
	if class == provider.Crypto {
		if m.MarketCap != nil {
			rows = append(rows, [2]string{"Market Cap", m.MarketCapText})
		}
		rows = append(rows, [2]string{"24H Volume", m.VolumeText})
	} else {
		rows = append(rows, [2]string{"Trading Volume", m.VolumeText})
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s", labelStyle.Render(fmt.Sprintf("%-15s", r[0]+":")), r[1])
	}
	return b.String()
}

// Chart renders the closing prices as horizontal bars scaled between the
// lowest and highest close.
func Chart(s view.ChartSeries) string {
	if len(s.Closes) == 0 {
		return dimStyle.Render("no history")
	}
	lo, hi := s.Closes[0], s.Closes[0]
	for _, c := range s.Closes {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	var b strings.Builder
	if s.Label != "" {
		b.WriteString(titleStyle.Render(s.Label))
		b.WriteByte('\n')
	}
	for i, c := range s.Closes {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := chartWidth / 2
		if hi > lo {
			n = 1 + int((c-lo)/(hi-lo)*float64(chartWidth-1))
		}
		fmt.Fprintf(&b, "%s %s %.2f", labelStyle.Render(s.Labels[i]), barStyle.Render(strings.Repeat("█", n)), c)
	}
	return b.String()
}

// Failure renders the user-facing error message.
func Failure(f *pipeline.Failure, verbose bool) string {
	if f == nil {
		return ""
	}
	out := errorStyle.Render(f.Message)
	if verbose && f.Detail != "" {
		out += "\n" + dimStyle.Render(fmt.Sprintf("%s: %s", f.Kind, f.Detail))
	}
	return out
}

// State renders a whole view: header, error or loading line, chart and
// metrics.
func State(class provider.AssetClass, s pipeline.QueryState, series view.ChartSeries, m view.DisplayMetrics, verbose bool) string {
	header := titleStyle.Render(fmt.Sprintf("%s · %s", strings.ToUpper(string(class)), s.Symbol))
	switch {
	case s.Loading:
		return boxStyle.Render(header + "\n" + dimStyle.Render("Loading..."))
	case s.Err != nil:
		return boxStyle.Render(header + "\n" + Failure(s.Err, verbose))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", Chart(series), "", Metrics(class, m)))
}

package vom

import (
	"strings"
	"unicode"

	"github.com/guibef/interminai-plus/internal/emulator"
)

// Segment walks each row left to right, accumulating runs of cells with
// identical style, and flushes each run as a cluster. Clusters come out in
// row-major order; all-whitespace runs are dropped.
func Segment(g Grid) []Cluster {
	rows, cols := g.Size()
	var clusters []Cluster

	for r := 0; r < rows; r++ {
		var run []rune
		var runStyle emulator.Style
		start := 0

		for c := 0; c < cols; c++ {
			ch, style, ok := g.Cell(r, c)
			if !ok {
				continue
			}
			switch {
			case len(run) == 0:
				run = append(run, ch)
				runStyle = style
				start = c
			case style == runStyle:
				run = append(run, ch)
			default:
				clusters = appendCluster(clusters, run, runStyle, r, start)
				run = []rune{ch}
				runStyle = style
				start = c
			}
		}
		if len(run) > 0 {
			clusters = appendCluster(clusters, run, runStyle, r, start)
		}
	}
	return clusters
}

// appendCluster trims the run and records it unless nothing remains. Bounds
// cover the first through last non-whitespace cell.
func appendCluster(clusters []Cluster, run []rune, style emulator.Style, row, col int) []Cluster {
	startOffset := -1
	endOffset := -1
	for i, r := range run {
		if !unicode.IsSpace(r) {
			if startOffset < 0 {
				startOffset = i
			}
			endOffset = i
		}
	}
	if startOffset < 0 {
		return clusters
	}

	text := strings.TrimSpace(string(run))
	return append(clusters, Cluster{
		Text:  text,
		Style: style,
		Bounds: Rect{
			X:      col + startOffset,
			Y:      row,
			Width:  endOffset - startOffset + 1,
			Height: 1,
		},
	})
}

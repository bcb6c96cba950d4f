package ambiguity

import (
	"regexp"
	"sync"

	"github.com/renamify-go/renamify/internal/casemodel"
)

// identifierPattern finds bare identifier-looking words to sample for style
// frequency analysis. It intentionally over-matches (it is only used to
// build a frequency histogram, not to locate real matches).
var identifierPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_-]{2,}`)

type styleHistogram map[casemodel.Style]int

func buildHistogram(content string) styleHistogram {
	hist := make(styleHistogram)
	for _, word := range identifierPattern.FindAllString(content, -1) {
		if style, ok := casemodel.DetectStyle(word); ok {
			hist[style]++
		}
	}
	return hist
}

func (h styleHistogram) dominant(possible []casemodel.Style) (casemodel.Style, int, bool) {
	best := casemodel.Style("")
	bestCount := 0
	found := false
	for _, st := range possible {
		if c, ok := h[st]; ok && c > bestCount {
			best, bestCount, found = st, c, true
		}
	}
	return best, bestCount, found
}

func confidenceForCount(total, matched int) Confidence {
	if total == 0 {
		return Low
	}
	ratio := float64(matched) / float64(total)
	switch {
	case ratio >= 0.6:
		return High
	case ratio >= 0.3:
		return Medium
	default:
		return Low
	}
}

// fileContextAnalyzer examines identifier style frequencies across a single
// file, caching the histogram per path (spec.md §4.G level 2).
type fileContextAnalyzer struct {
	mu         sync.Mutex
	histograms map[string]styleHistogram
}

func newFileContextAnalyzer() *fileContextAnalyzer {
	return &fileContextAnalyzer{histograms: make(map[string]styleHistogram)}
}

func (a *fileContextAnalyzer) observe(path, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.histograms[path] = buildHistogram(content)
}

func (a *fileContextAnalyzer) resolve(path string, possible []casemodel.Style) (Resolved, bool) {
	a.mu.Lock()
	hist, ok := a.histograms[path]
	a.mu.Unlock()
	if !ok || len(hist) == 0 {
		return Resolved{}, false
	}
	total := 0
	for _, c := range hist {
		total += c
	}
	style, count, found := hist.dominant(possible)
	if !found {
		return Resolved{}, false
	}
	return Resolved{Style: style, Confidence: confidenceForCount(total, count), Method: FileContextMethod}, true
}

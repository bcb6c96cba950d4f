package ambiguity

import (
	"path/filepath"
	"sync"

	"github.com/renamify-go/renamify/internal/casemodel"
)

// crossFileContextAnalyzer aggregates style histograms across every file of
// a given extension observed so far, used as level 3 of the cascade when a
// single file's own context is insufficient (spec.md §4.G level 3).
type crossFileContextAnalyzer struct {
	mu   sync.Mutex
	byExt map[string]styleHistogram
}

func newCrossFileContextAnalyzer() *crossFileContextAnalyzer {
	return &crossFileContextAnalyzer{byExt: make(map[string]styleHistogram)}
}

func (a *crossFileContextAnalyzer) observe(path, content string) {
	ext := filepath.Ext(path)
	hist := buildHistogram(content)

	a.mu.Lock()
	defer a.mu.Unlock()
	existing, ok := a.byExt[ext]
	if !ok {
		existing = make(styleHistogram)
		a.byExt[ext] = existing
	}
	for style, count := range hist {
		existing[style] += count
	}
}

func (a *crossFileContextAnalyzer) resolve(path string, possible []casemodel.Style) (Resolved, bool) {
	ext := filepath.Ext(path)

	a.mu.Lock()
	hist, ok := a.byExt[ext]
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
	return Resolved{Style: style, Confidence: confidenceForCount(total, count), Method: CrossFileContextMethod}, true
}

// Package scanner implements component I of spec.md §4: it orchestrates
// the walker, the pattern engine, and the compound matcher into the
// MatchHunk list and Stats that make up a Plan, applying exclude-match
// filters and coercion along the way. It mirrors the teacher's
// performSmartSearch/performAdvancedTextSearch shape (walk → per-file
// worker → mutex-protected accumulation) generalized from text search to
// rename planning.
package scanner

import (
	"bytes"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/ambiguity"
	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/renamify-go/renamify/internal/coercion"
	"github.com/renamify-go/renamify/internal/compound"
	"github.com/renamify-go/renamify/internal/pattern"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/renamify-go/renamify/internal/scancache"
	"github.com/renamify-go/renamify/internal/variant"
	"github.com/renamify-go/renamify/internal/walker"
)

// Options configures a scan.
type Options struct {
	Walker   walker.Options
	Old      string
	New      string
	Styles   []casemodel.Style
	Variants *variant.Map
	Acronyms *acronym.Set

	// ExcludeMatchingLines drops any match whose whole line also matches
	// one of these literal substrings (spec.md §4.I exclude_matching_lines).
	ExcludeMatchingLines []string

	// Cache, if set, skips the matcher pass entirely for a file whose
	// (size, mtime) fingerprint is unchanged since it was last cached.
	Cache *scancache.Cache
}

// Result is everything the scanner produced.
type Result struct {
	Matches []planmodel.MatchHunk
	Stats   planmodel.Stats
}

type rawMatch struct {
	start, end int
	replace    string
	coercion   string
}

// Scan walks opts.Walker.Root and returns every MatchHunk found.
func Scan(opts Options) (Result, error) {
	acronyms := opts.Acronyms
	if acronyms == nil {
		acronyms = acronym.Default()
	}

	keys := variantKeys(opts.Variants)
	pm := pattern.Build(keys)
	cm := compound.New(casemodel.ParseWithAcronyms(opts.Old, acronyms), acronyms, opts.Styles)
	resolver := ambiguity.NewResolver()

	var (
		mu               sync.Mutex
		hunks            []planmodel.MatchHunk
		filesScanned     int
		filesWithMatches int
		matchesByVariant = map[string]int{}
		firstErr         error
	)

	walkErr := walker.Walk(opts.Walker, func(f walker.File) error {
		info, statErr := os.Stat(f.Path)
		if statErr != nil {
			return nil
		}

		mu.Lock()
		filesScanned++
		mu.Unlock()

		if opts.Cache != nil {
			if cached, ok := opts.Cache.Get(f.Path, info.Size(), info.ModTime()); ok {
				if len(cached) == 0 {
					return nil
				}
				mu.Lock()
				filesWithMatches++
				hunks = append(hunks, cached...)
				for _, h := range cached {
					matchesByVariant[h.Variant]++
				}
				mu.Unlock()
				return nil
			}
		}

		content, err := os.ReadFile(f.Path)
		if err != nil {
			return nil
		}

		resolver.ObserveFile(f.Path, string(content))

		raws := collectRaws(content, pm, cm, opts, acronyms, resolver, f.Path)
		fileHunks := buildHunks(f.Path, content, raws, opts)

		if opts.Cache != nil {
			opts.Cache.Set(f.Path, info.Size(), info.ModTime(), fileHunks)
		}

		if len(fileHunks) == 0 {
			return nil
		}

		mu.Lock()
		filesWithMatches++
		hunks = append(hunks, fileHunks...)
		for _, h := range fileHunks {
			matchesByVariant[h.Variant]++
		}
		mu.Unlock()
		return nil
	})
	if walkErr != nil && firstErr == nil {
		firstErr = walkErr
	}

	sort.Slice(hunks, func(i, j int) bool {
		if hunks[i].File != hunks[j].File {
			return hunks[i].File < hunks[j].File
		}
		return hunks[i].Start < hunks[j].Start
	})

	return Result{
		Matches: hunks,
		Stats: planmodel.Stats{
			FilesScanned:     filesScanned,
			TotalMatches:     len(hunks),
			MatchesByVariant: matchesByVariant,
			FilesWithMatches: filesWithMatches,
		},
	}, firstErr
}

func variantKeys(vmap *variant.Map) []string {
	if vmap == nil {
		return nil
	}
	var keys []string
	for pair := vmap.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	// Longest-first so the Aho-Corasick overlap resolver in pattern.FindAll
	// prefers the most specific variant when two keys share a prefix.
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}

// collectRaws runs the exact-variant pattern matcher and the compound
// matcher over content and merges their results, resolving overlaps with
// the same earliest-start/longest-wins rule pattern.FindAll already
// applies within a single matcher.
func collectRaws(content []byte, pm *pattern.Matcher, cm *compound.Matcher, opts Options, acronyms *acronym.Set, resolver *ambiguity.Resolver, path string) []rawMatch {
	replacement := func(keyword string) (string, bool) {
		if opts.Variants == nil {
			return "", false
		}
		v, ok := opts.Variants.Get(keyword)
		return v, ok
	}

	var candidates []rawMatch
	for _, m := range pm.FindAll(content) {
		repl, ok := replacement(m.Keyword)
		if !ok {
			continue
		}
		candidates = append(candidates, rawMatch{start: m.Start, end: m.End, replace: repl})
	}

	replTokens := casemodel.ParseWithAcronyms(opts.New, acronyms)
	for _, m := range cm.FindAll(content) {
		lineBefore, lineAfter := lineContext(content, m.Start, m.End)
		style, detected := casemodel.DetectStyleWithAcronyms(m.Identifier, acronyms)
		if !detected {
			style = casemodel.Camel
		}
		text := compound.Rewrite(m, replTokens, style, acronyms)
		coerced := coercion.Coerce(replTokens, style, lineBefore, lineAfter, acronyms)
		result := coerced.Text
		reason := ""
		if coerced.Applied {
			reason = coercionReason(coerced.Style)
		} else {
			result = text
		}
		candidates = append(candidates, rawMatch{start: m.Start, end: m.End, replace: result, coercion: reason})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return (candidates[i].end - candidates[i].start) > (candidates[j].end - candidates[j].start)
	})

	var out []rawMatch
	lastEnd := -1
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		out = append(out, c)
		lastEnd = c.end
	}
	return out
}

// coercionReason renders a MatchHunk.CoercionApplied value in spec.md
// §4.F's format ("coerced to <Style> style"), matching the original's own
// "coerced to Pascal style"-shaped reason text.
func coercionReason(style casemodel.Style) string {
	return "coerced to " + style.DisplayName() + " style"
}

func lineContext(content []byte, start, end int) (before, after string) {
	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	lineEndRel := bytes.IndexByte(content[end:], '\n')
	lineEnd := len(content)
	if lineEndRel >= 0 {
		lineEnd = end + lineEndRel
	}
	return string(content[lineStart:start]), string(content[end:lineEnd])
}

func buildHunks(path string, content []byte, raws []rawMatch, opts Options) []planmodel.MatchHunk {
	var out []planmodel.MatchHunk
	lines := splitLinesKeepOffsets(content)

	for _, r := range raws {
		ln, col, lineText, lineStart := locate(lines, r.start)

		if matchesExcludedLine(lineText, opts.ExcludeMatchingLines) {
			continue
		}

		matchedText := string(content[r.start:r.end])
		before := string(content[lineStart:r.start])
		after := lineText[r.start-lineStart+len(matchedText):]

		out = append(out, planmodel.MatchHunk{
			File:            path,
			Line:            ln,
			Col:             col,
			Variant:         matchedText,
			Content:         lineText,
			Replace:         r.replace,
			Start:           r.start,
			End:             r.end,
			LineBefore:      before,
			LineAfter:       after,
			CoercionApplied: r.coercion,
		})
	}
	return out
}

type lineInfo struct {
	number int
	start  int
	end    int
	text   string
}

func splitLinesKeepOffsets(content []byte) []lineInfo {
	var out []lineInfo
	start := 0
	n := 1
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			out = append(out, lineInfo{number: n, start: start, end: i, text: string(content[start:i])})
			start = i + 1
			n++
		}
	}
	return out
}

func locate(lines []lineInfo, offset int) (line, col int, text string, lineStart int) {
	idx := sort.Search(len(lines), func(i int) bool { return lines[i].end >= offset })
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	li := lines[idx]
	return li.number, offset - li.start + 1, li.text, li.start
}

func matchesExcludedLine(lineText string, excludes []string) bool {
	for _, e := range excludes {
		if e != "" && strings.Contains(lineText, e) {
			return true
		}
	}
	return false
}

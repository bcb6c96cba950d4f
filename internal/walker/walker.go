// Package walker implements the directory traversal component (spec.md
// §4.H): ignore-file layering, include/exclude glob filtering, binary
// detection, and a size-based read strategy. The tree is descended
// sequentially and the per-file callback is dispatched across a bounded
// worker pool the way the teacher's core/search_operations.go and
// core/engine.go do.
package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/panjf2000/ants/v2"
	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreFileNames are read, in this order, from every directory on the
// way down, matching ripgrep-family layering (spec.md §4.H).
var ignoreFileNames = []string{".gitignore", ".ignore", ".rgignore", ".rnignore"}

// largeFileThreshold is the size above which File.Strategy reports
// Mmap instead of Stream, mirroring the teacher's size-tiered processing
// in core/large_file_processor.go / core/streaming_operations.go.
const largeFileThreshold = 50 * 1024 * 1024

// ReadStrategy names how a scanner should read a file's bytes.
type ReadStrategy int

const (
	Stream ReadStrategy = iota
	Mmap
)

// File is one file the walker decided to yield to the scanner.
type File struct {
	Path     string
	Size     int64
	Strategy ReadStrategy
}

// Options configures a walk.
type Options struct {
	Root    string
	Include []string // doublestar glob patterns; empty means "everything"
	Exclude []string // doublestar glob patterns layered on top of ignore files

	// UnrestrictedLevel mirrors ripgrep's -u/-uu/-uuu: 0 honors every
	// ignore file, 1 skips .gitignore only (other ignore files and hidden
	// entries are still skipped), 2 skips every ignore file and also walks
	// hidden entries, 3 additionally treats binary files as text.
	UnrestrictedLevel int

	// Concurrency bounds the worker pool that runs the Walk callback for
	// each collected file; <=0 uses a small fixed default.
	Concurrency int
}

// textExtensions is a pre-computed allow-list for the common case,
// ported from the teacher's textExtensionsMap fast path; anything not
// listed falls through to the byte-sniffing check in looksBinary.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".rst": true,
	".go": true, ".mod": true, ".sum": true,
	".js": true, ".ts": true, ".jsx": true, ".tsx": true, ".mjs": true, ".cjs": true,
	".py": true, ".pyi": true,
	".java": true, ".kt": true, ".scala": true,
	".c": true, ".cpp": true, ".cc": true, ".h": true, ".hpp": true,
	".rs": true, ".rb": true, ".php": true, ".swift": true,
	".cs": true, ".fs": true,
	".css": true, ".scss": true, ".sass": true, ".less": true,
	".html": true, ".htm": true, ".xml": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".sh": true, ".bash": true, ".zsh": true, ".ps1": true,
	".sql": true, ".md5": true, ".cfg": true, ".conf": true,
	".gitignore": true, ".env": true, ".dockerfile": true,
}

// binaryExtensions short-circuits obviously binary files without reading
// them, ported from the teacher's isBinaryFile extension table.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".ico": true, ".webp": true,
	".mp4": true, ".mov": true, ".mp3": true, ".wav": true, ".flac": true,
	".zip": true, ".tar": true, ".gz": true, ".7z": true, ".rar": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".db": true, ".sqlite": true,
}

type dirIgnores struct {
	parent  *dirIgnores
	matcher *gitignore.GitIgnore
}

func (d *dirIgnores) matches(relPath string, isDir bool) bool {
	for cur := d; cur != nil; cur = cur.parent {
		if cur.matcher != nil && cur.matcher.MatchesPath(relPath) {
			return true
		}
	}
	return false
}

// Walk traverses opts.Root and calls fn for every file that survives
// ignore-file layering, hidden-entry rules, and include/exclude globs. fn
// errors abort the walk and are returned from Walk.
func Walk(opts Options, fn func(File) error) error {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	files, err := collect(opts)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		firstErr error
	)
	pool, err := ants.NewPool(concurrency, ants.WithPreAlloc(true))
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, f := range files {
		f := f
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			mu.Lock()
			if firstErr != nil {
				mu.Unlock()
				return
			}
			mu.Unlock()
			if err := fn(f); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}
	wg.Wait()
	return firstErr
}

// collect performs the (sequential, cheap) directory-tree descent that
// determines which paths pass every filter, including the stat and
// binary sniff of each file; the parallel pool in Walk then runs the
// caller's callback on each collected file, matching the teacher's two-pass
// collect-then-dispatch-to-pool shape in performSmartSearch.
func collect(opts Options) ([]File, error) {
	root := opts.Root
	var out []File

	var walk func(dir string, ignores *dirIgnores) error
	walk = func(dir string, ignores *dirIgnores) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}

		localIgnores := ignores
		if opts.UnrestrictedLevel < 2 {
			if m := loadDirIgnoreFiles(dir, opts.UnrestrictedLevel >= 1); m != nil {
				localIgnores = &dirIgnores{parent: ignores, matcher: m}
			}
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(dir, name)
			rel, relErr := filepath.Rel(root, full)
			if relErr != nil {
				rel = name
			}
			rel = filepath.ToSlash(rel)

			if opts.UnrestrictedLevel < 2 && strings.HasPrefix(name, ".") && name != "." && name != ".." {
				continue
			}
			if name == ".git" {
				continue
			}

			isDir := entry.IsDir()
			if opts.UnrestrictedLevel < 2 && localIgnores.matches(rel, isDir) {
				continue
			}
			if matchesGlobs(rel, opts.Exclude) {
				continue
			}

			if isDir {
				if err := walk(full, localIgnores); err != nil {
					return err
				}
				continue
			}

			if len(opts.Include) > 0 && !matchesGlobs(rel, opts.Include) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}
			if opts.UnrestrictedLevel < 3 && looksBinary(full) {
				continue
			}

			strategy := Stream
			if info.Size() > largeFileThreshold {
				strategy = Mmap
			}
			out = append(out, File{Path: full, Size: info.Size(), Strategy: strategy})
		}
		return nil
	}

	if err := walk(root, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func matchesGlobs(rel string, patterns []string) bool {
	for _, p := range patterns {
		pattern := expandBareDirPattern(p)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// expandBareDirPattern turns a bare directory name like "vendor" or
// "node_modules" into "**/vendor/**" so users can exclude a directory
// without knowing doublestar's glob syntax, same convenience ripgrep's
// ignore files give for free.
func expandBareDirPattern(p string) string {
	if strings.ContainsAny(p, "*?[]{}") || strings.Contains(p, "/") {
		return p
	}
	return "**/" + p + "/**"
}

func loadDirIgnoreFiles(dir string, skipGitignore bool) *gitignore.GitIgnore {
	var lines []string
	for _, name := range ignoreFileNames {
		if skipGitignore && name == ".gitignore" {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sc := bufio.NewScanner(strings.NewReader(string(data)))
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(lines...)
}

// looksBinary mirrors the teacher's isTextFile: a fast extension lookup
// first, then a 512-byte null-scan for unknown extensions.
func looksBinary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if textExtensions[ext] {
		return false
	}
	if binaryExtensions[ext] {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}

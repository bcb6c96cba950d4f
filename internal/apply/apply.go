// Package apply implements the transactional apply engine (spec.md §4.K):
// lock the workspace, write a reverse patch for each touched file, rewrite
// content in place via temp-file+rename, perform renames in dependency
// order, and persist the plan and history entry. No per-file metadata
// (permissions, mtime, checksum) is recorded. Its snapshot-then-atomic-write shape is grounded on the
// teacher's core/backup_manager.go (CreateBackupWithContext,
// hash-named backup files) and core/edit_operations.go's
// write-temp-then-os.Rename idiom.
package apply

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/renamify-go/renamify/internal/history"
	"github.com/renamify-go/renamify/internal/lockfile"
	"github.com/renamify-go/renamify/internal/logx"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/renamify-go/renamify/internal/rnerrors"
)

// Options configures one Apply invocation.
type Options struct {
	RenamifyDir string // ".renamify" relative to the workspace root
	CommitGit   bool
}

// Outcome summarizes a successful apply.
type Outcome struct {
	BackupID string
	Entry    history.Entry
}

// Apply executes plan transactionally: acquire the workspace lock, then for
// each touched file write its reverse patch for undo and rewrite its
// contents, then perform renames (deepest-first so children move before
// their parents), and persist the plan and a history.Entry.
func Apply(workspaceRoot string, plan *planmodel.Plan, opts Options) (Outcome, error) {
	if len(plan.Conflicts) > 0 {
		return Outcome{}, &rnerrors.ConflictError{Count: len(plan.Conflicts)}
	}

	renamifyDir := filepath.Join(workspaceRoot, opts.RenamifyDir)
	lock, err := lockfile.Acquire(renamifyDir)
	if err != nil {
		return Outcome{}, err
	}
	defer lock.Release()

	logger, err := logx.Open(filepath.Join(renamifyDir, "apply.log"), false)
	if err != nil {
		return Outcome{}, err
	}
	defer logger.Close()

	backupID := uuid.NewString()
	backupDir := filepath.Join(renamifyDir, "backups", backupID)
	patchDir := filepath.Join(backupDir, "reverse_patches")
	if err := os.MkdirAll(patchDir, 0o755); err != nil {
		return Outcome{}, &rnerrors.IoError{Op: "mkdir", Path: patchDir, Err: err}
	}

	logger.Printf("apply start plan=%s backup=%s", plan.ID, backupID)

	affected := map[string]string{}
	byFile := groupByFile(plan.Matches)

	for file, idxs := range byFile {
		absPath := resolvePath(workspaceRoot, file)
		original, err := os.ReadFile(absPath)
		if err != nil {
			return Outcome{}, &rnerrors.IoError{Op: "read", Path: absPath, Err: err}
		}

		hunks := make([]planmodel.MatchHunk, len(idxs))
		for i, idx := range idxs {
			hunks[i] = plan.Matches[idx]
		}

		if err := verifyHunks(original, hunks); err != nil {
			return Outcome{}, err
		}

		rewritten := applyHunks(original, hunks)

		patchHash, err := writeReversePatch(patchDir, file, string(rewritten), string(original))
		if err != nil {
			return Outcome{}, err
		}
		for _, idx := range idxs {
			plan.Matches[idx].PatchHash = patchHash
		}

		if err := writeFileAtomic(absPath, rewritten); err != nil {
			return Outcome{}, err
		}

		affected[file] = patchHash
		logger.Printf("rewrote %s (%d hunk(s), patch=%s)", file, len(hunks), patchHash)
	}

	renamePairs, createdDirs, pathRewrites, err := performRenames(workspaceRoot, plan.Paths, logger)
	if err != nil {
		return Outcome{}, err
	}
	plan.CreatedDirectories = append(plan.CreatedDirectories, createdDirs...)

	// Backfill original_file (spec.md §8 apply invariants) on every hunk,
	// and renamed_file on every hunk whose file moved, directly or because
	// an ancestor directory was renamed.
	for i := range plan.Matches {
		plan.Matches[i].OriginalFile = plan.Matches[i].File
		renamedFile := resolveRenamedPath(plan.Matches[i].File, pathRewrites)
		if renamedFile != plan.Matches[i].File {
			plan.Matches[i].RenamedFile = renamedFile
		}
	}

	if opts.CommitGit {
		_ = commitGit(workspaceRoot, plan)
	}

	entry := history.Entry{
		ID:            uuid.NewString(),
		CreatedAt:     nowStamp(),
		Old:           plan.Old,
		New:           plan.New,
		Styles:        plan.Styles,
		Includes:      plan.Includes,
		Excludes:      plan.Excludes,
		AffectedFiles: affected,
		Renames:       renamePairs,
		BackupsPath:   backupDir,
	}

	store := history.Open(renamifyDir)
	if err := store.Append(entry); err != nil {
		return Outcome{}, err
	}

	planPath := filepath.Join(renamifyDir, "plans", plan.ID+".json")
	if err := os.MkdirAll(filepath.Dir(planPath), 0o755); err != nil {
		return Outcome{}, &rnerrors.IoError{Op: "mkdir", Path: filepath.Dir(planPath), Err: err}
	}
	if err := plan.Save(planPath); err != nil {
		return Outcome{}, err
	}
	if err := plan.Save(filepath.Join(renamifyDir, "plan.json")); err != nil {
		return Outcome{}, err
	}

	logger.Printf("apply complete plan=%s", plan.ID)
	return Outcome{BackupID: backupID, Entry: entry}, nil
}

// groupByFile indexes plan.Matches by file, so callers can mutate the
// hunks in place (via the returned indices) rather than operating on
// disconnected copies.
func groupByFile(matches []planmodel.MatchHunk) map[string][]int {
	out := map[string][]int{}
	for i, m := range matches {
		out[m.File] = append(out[m.File], i)
	}
	for file, idxs := range out {
		sort.Slice(idxs, func(i, j int) bool { return matches[idxs[i]].Start < matches[idxs[j]].Start })
		out[file] = idxs
	}
	return out
}

// verifyHunks re-checks that every hunk's recorded byte range still holds
// the content it was scanned with, guarding against concurrent edits
// between plan and apply.
func verifyHunks(content []byte, hunks []planmodel.MatchHunk) error {
	for _, h := range hunks {
		if h.Start < 0 || h.End > len(content) || h.Start > h.End {
			return &rnerrors.ContentMismatchError{Path: h.File, Start: h.Start, End: h.End}
		}
		if string(content[h.Start:h.End]) != h.Variant {
			return &rnerrors.ContentMismatchError{Path: h.File, Start: h.Start, End: h.End}
		}
	}
	return nil
}

// applyHunks rewrites content by substituting every hunk's [Start,End)
// range with its Replace text, processed back-to-front so earlier offsets
// stay valid as later ones are rewritten.
func applyHunks(content []byte, hunks []planmodel.MatchHunk) []byte {
	out := append([]byte(nil), content...)
	for i := len(hunks) - 1; i >= 0; i-- {
		h := hunks[i]
		var buf []byte
		buf = append(buf, out[:h.Start]...)
		buf = append(buf, []byte(h.Replace)...)
		buf = append(buf, out[h.End:]...)
		out = buf
	}
	return out
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place, matching the teacher's write-temp-then-os.Rename pattern, then
// fsyncs the containing directory so the rename itself is durable.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode()
	}
	tmp := path + ".tmp." + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return &rnerrors.IoError{Op: "create temp file", Path: tmp, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return &rnerrors.IoError{Op: "write temp file", Path: tmp, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &rnerrors.IoError{Op: "sync temp file", Path: tmp, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &rnerrors.IoError{Op: "close temp file", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &rnerrors.IoError{Op: "rename temp file", Path: path, Err: err}
	}
	if dir, err := os.Open(filepath.Dir(path)); err == nil {
		_ = dir.Sync()
		_ = dir.Close()
	}
	return nil
}

// writeReversePatch writes a unified diff (new -> old) so undo can apply
// it later, and returns the sha256 hash used as its filename, mirroring
// the teacher's hash-named backup files.
func writeReversePatch(patchDir, file, newContent, oldContent string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(newContent),
		B:        difflib.SplitLines(oldContent),
		FromFile: file,
		ToFile:   file,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", &rnerrors.IoError{Op: "generate reverse patch", Path: file, Err: err}
	}
	sum := sha256.Sum256([]byte(text))
	hash := hex.EncodeToString(sum[:])
	path := filepath.Join(patchDir, hash+".patch")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &rnerrors.IoError{Op: "write", Path: path, Err: err}
	}
	return hash, nil
}

// performRenames executes planned renames deepest-path-first so child
// entries move while their (possibly also-renamed) parent directory still
// exists under its pre-rename name, then prefix-rewrites any rename whose
// source path lay under an already-renamed directory. The returned map is
// the final old-prefix -> new-prefix table, reused by the caller to
// backfill MatchHunk.OriginalFile/RenamedFile for every moved file.
func performRenames(root string, renames []planmodel.Rename, logger *logx.Logger) ([]history.RenamePair, []string, map[string]string, error) {
	ordered := append([]planmodel.Rename(nil), renames...)
	sort.Slice(ordered, func(i, j int) bool {
		return strings.Count(ordered[i].Path, string(filepath.Separator)) > strings.Count(ordered[j].Path, string(filepath.Separator))
	})

	var pairs []history.RenamePair
	var createdDirs []string
	rewritten := map[string]string{} // old prefix -> new prefix, applied to later entries

	for _, r := range ordered {
		from := applyPrefixRewrite(r.Path, rewritten)
		to := applyPrefixRewrite(r.NewPath, rewritten)

		absFrom := resolvePath(root, from)
		absTo := resolvePath(root, to)

		if dir := filepath.Dir(absTo); dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, nil, nil, &rnerrors.IoError{Op: "mkdir", Path: dir, Err: err}
				}
				createdDirs = append(createdDirs, dir)
			}
		}

		if err := os.Rename(absFrom, absTo); err != nil {
			return nil, nil, nil, &rnerrors.IoError{Op: "rename", Path: absFrom, Err: err}
		}
		logger.Printf("renamed %s -> %s", from, to)

		rewritten[r.Path] = r.NewPath
		pairs = append(pairs, history.RenamePair{From: r.Path, To: r.NewPath})
	}
	return pairs, createdDirs, rewritten, nil
}

// applyPrefixRewrite rewrites path by the longest old prefix in rewritten
// that equals path or is one of its ancestor directories.
func applyPrefixRewrite(path string, rewritten map[string]string) string {
	best := ""
	for oldPrefix := range rewritten {
		if len(oldPrefix) <= len(best) {
			continue
		}
		if path == oldPrefix || strings.HasPrefix(path, oldPrefix+string(filepath.Separator)) {
			best = oldPrefix
		}
	}
	if best == "" {
		return path
	}
	return rewritten[best] + path[len(best):]
}

// resolveRenamedPath applies rewrites to a fixed point: a file renamed
// before its ancestor directory (performRenames runs deepest-first) is
// recorded under its pre-ancestor-rename prefix, so a single
// applyPrefixRewrite pass is not enough to land on the final on-disk path.
func resolveRenamedPath(path string, rewritten map[string]string) string {
	for i := 0; i <= len(rewritten); i++ {
		next := applyPrefixRewrite(path, rewritten)
		if next == path {
			return path
		}
		path = next
	}
	return path
}

func resolvePath(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

// commitGit records applied renames as a git commit, matching the
// optional "commit" step spec.md §4.K allows; it shells out to the system
// git binary rather than vendoring a git library, since the pack has no
// native-Go git-porcelain dependency to reuse.
func commitGit(root string, plan *planmodel.Plan) error {
	msg := fmt.Sprintf("renamify: %s -> %s", plan.Old, plan.New)
	addCmd := exec.Command("git", "add", "-A")
	addCmd.Dir = root
	if err := addCmd.Run(); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	commitCmd := exec.Command("git", "commit", "-m", msg)
	commitCmd.Dir = root
	return commitCmd.Run()
}

func nowStamp() time.Time {
	return time.Now()
}

// Package undo implements the undo/redo engine (spec.md §4.L): inverse
// path renames, reverse-patch application (falling back to a .rej file
// alongside the target when a patch no longer applies cleanly), and
// HistoryEntry revert/redo bookkeeping. Directories the apply created are
// left in place. Grounded on the Rust original's undo.rs, applying the same
// reverse-patches-already-point-the-right-way design this implementation
// inherited from internal/apply.
package undo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/google/uuid"

	"github.com/renamify-go/renamify/internal/history"
	"github.com/renamify-go/renamify/internal/lockfile"
	"github.com/renamify-go/renamify/internal/logx"
	"github.com/renamify-go/renamify/internal/rnerrors"
)

// Options configures one Revert/Redo invocation.
type Options struct {
	RenamifyDir string
}

// Revert undoes the effects of entry: renames paths back to their
// pre-apply names, applies each file's stored reverse patch, and appends a
// new HistoryEntry recording the revert. Directories the original apply
// created are not removed.
func Revert(workspaceRoot string, entries []history.Entry, id string, opts Options) (history.Entry, error) {
	target, ok := history.FindByID(entries, id)
	if !ok {
		return history.Entry{}, &rnerrors.InvalidInputError{Field: "id", Value: id, Msg: "no such history entry"}
	}
	if history.IsReverted(entries, id) {
		return history.Entry{}, &rnerrors.AlreadyRevertedError{ID: id}
	}

	renamifyDir := filepath.Join(workspaceRoot, opts.RenamifyDir)
	lock, err := lockfile.Acquire(renamifyDir)
	if err != nil {
		return history.Entry{}, err
	}
	defer lock.Release()

	logger, err := logx.Open(filepath.Join(renamifyDir, "apply.log"), false)
	if err != nil {
		return history.Entry{}, err
	}
	defer logger.Close()

	// Inverse renames: undo the rename with the deepest current (To) path
	// first, reversing the original from->to into to->from.
	reversedRenames := append([]history.RenamePair(nil), target.Renames...)
	sort.SliceStable(reversedRenames, func(i, j int) bool {
		return strings.Count(reversedRenames[i].To, string(filepath.Separator)) < strings.Count(reversedRenames[j].To, string(filepath.Separator))
	})
	for i := len(reversedRenames) - 1; i >= 0; i-- {
		pair := reversedRenames[i]
		from := resolvePath(workspaceRoot, pair.To)
		to := resolvePath(workspaceRoot, pair.From)
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return history.Entry{}, &rnerrors.IoError{Op: "mkdir", Path: filepath.Dir(to), Err: err}
		}
		if err := os.Rename(from, to); err != nil {
			return history.Entry{}, &rnerrors.IoError{Op: "rename", Path: from, Err: err}
		}
		logger.Printf("revert rename %s -> %s", pair.To, pair.From)
	}

	// Apply each file's stored reverse patch.
	var patchErrs []error
	for file, patchHash := range target.AffectedFiles {
		if err := applyReversePatch(workspaceRoot, target.BackupsPath, file, patchHash, logger); err != nil {
			var patchErr *rnerrors.PatchApplyError
			if !errors.As(err, &patchErr) {
				return history.Entry{}, err
			}
			patchErrs = append(patchErrs, err)
		}
	}
	if len(patchErrs) > 0 {
		return history.Entry{}, errors.Join(patchErrs...)
	}

	revertEntry := history.Entry{
		ID:        uuid.NewString(),
		CreatedAt: nowStamp(),
		Old:       target.New,
		New:       target.Old,
		Styles:    target.Styles,
		Includes:  target.Includes,
		Excludes:  target.Excludes,
		RevertOf:  target.ID,
	}

	store := history.Open(renamifyDir)
	if err := store.Append(revertEntry); err != nil {
		return history.Entry{}, err
	}

	logger.Printf("revert complete of=%s entry=%s", target.ID, revertEntry.ID)
	return revertEntry, nil
}

// Redo re-applies a reverted plan: it finds the revert entry for id and
// reverts *that*, which by construction replays the original rename.
func Redo(workspaceRoot string, entries []history.Entry, id string, opts Options) (history.Entry, error) {
	target, ok := history.FindByID(entries, id)
	if !ok {
		return history.Entry{}, &rnerrors.InvalidInputError{Field: "id", Value: id, Msg: "no such history entry"}
	}
	revertEntry, ok := history.RevertEntryFor(entries, target.ID)
	if !ok {
		return history.Entry{}, &rnerrors.NotRevertedError{ID: id}
	}
	redone, err := Revert(workspaceRoot, entries, revertEntry.ID, opts)
	if err != nil {
		return history.Entry{}, err
	}
	redone.RedoOf = target.ID
	return redone, nil
}

// applyReversePatch reads the stored unified diff for file and applies it
// in place; if the patch no longer applies cleanly (the file changed
// since the backup), the patch text is written beside the target as a
// .rej file instead of failing the whole revert outright.
func applyReversePatch(workspaceRoot, backupsPath, file, patchHash string, logger *logx.Logger) error {
	patchPath := filepath.Join(backupsPath, "reverse_patches", patchHash+".patch")
	patchData, err := os.ReadFile(patchPath)
	if err != nil {
		return &rnerrors.IoError{Op: "read", Path: patchPath, Err: err}
	}

	files, _, err := gitdiff.Parse(bytes.NewReader(patchData))
	if err != nil || len(files) == 0 {
		return writeRejectFile(workspaceRoot, file, patchData, fmt.Errorf("parse patch: %w", err))
	}

	target := resolvePath(workspaceRoot, file)
	src, err := os.ReadFile(target)
	if err != nil {
		return &rnerrors.IoError{Op: "read", Path: target, Err: err}
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, bytes.NewReader(src), files[0]); err != nil {
		return writeRejectFile(workspaceRoot, file, patchData, err)
	}

	if err := os.WriteFile(target, out.Bytes(), 0o644); err != nil {
		return &rnerrors.IoError{Op: "write", Path: target, Err: err}
	}
	logger.Printf("reverted content of %s via patch %s", file, patchHash)
	return nil
}

func writeRejectFile(workspaceRoot, file string, patchData []byte, cause error) error {
	target := resolvePath(workspaceRoot, file)
	rejPath := target + ".rej"
	if err := os.WriteFile(rejPath, patchData, 0o644); err != nil {
		return &rnerrors.IoError{Op: "write reject file", Path: rejPath, Err: err}
	}
	return &rnerrors.PatchApplyError{Path: file, Err: cause}
}

func resolvePath(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

func nowStamp() time.Time {
	return time.Now()
}

// Command renamify is the CLI surface for the case-aware bulk renamer
// (spec.md §6): plan, apply, undo, redo, status, history, rename, and
// init subcommands, each its own flag.FlagSet dispatched from os.Args[1],
// following the teacher's flag.*-based configuration idiom (main.go's
// Configuration/DefaultConfiguration) generalized from one long-running
// server flag set to several short-lived subcommands.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/renamify-go/renamify/internal/acronym"
	"github.com/renamify-go/renamify/internal/apply"
	"github.com/renamify-go/renamify/internal/casemodel"
	"github.com/renamify-go/renamify/internal/history"
	"github.com/renamify-go/renamify/internal/planmodel"
	"github.com/renamify-go/renamify/internal/rnconfig"
	"github.com/renamify-go/renamify/internal/rnerrors"
	"github.com/renamify-go/renamify/internal/rnrename"
	"github.com/renamify-go/renamify/internal/scanner"
	"github.com/renamify-go/renamify/internal/undo"
	"github.com/renamify-go/renamify/internal/variant"
	"github.com/renamify-go/renamify/internal/walker"
)

const renamifyDirName = ".renamify"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return rnerrors.ExitInvalidInput
	}

	var err error
	switch args[0] {
	case "plan":
		err = runPlan(args[1:])
	case "dry-run":
		err = runPlan(append([]string{"-dry-run"}, args[1:]...))
	case "apply":
		err = runApply(args[1:])
	case "undo":
		err = runUndo(args[1:])
	case "redo":
		err = runRedo(args[1:])
	case "status":
		err = runStatus(args[1:])
	case "history":
		err = runHistory(args[1:])
	case "rename":
		err = runRename(args[1:])
	case "init":
		err = runInit(args[1:])
	case "version", "-version", "--version":
		fmt.Printf("renamify %s (%s, %s/%s)\n", "0.1.0", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return rnerrors.ExitSuccess
	default:
		printUsage()
		return rnerrors.ExitInvalidInput
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "renamify: %v\n", err)
		return rnerrors.ExitCodeFor(err)
	}
	return rnerrors.ExitSuccess
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: renamify <plan|apply|undo|redo|status|history|rename|init> [flags]")
}

// commonFlags holds the flags shared by plan and rename.
type commonFlags struct {
	root           *string
	styles         *string
	include        *string
	exclude        *string
	excludeLines   *string
	includePlurals *bool
	atomicSearch   *bool
	atomicReplace  *bool
	unrestricted   *int
	dryRun         *bool
}

func bindCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		root:           fs.String("root", ".", "workspace root to scan"),
		styles:         fs.String("styles", "", "comma-separated list of styles (default: the built-in style set)"),
		include:        fs.String("include", "", "comma-separated doublestar include globs"),
		exclude:        fs.String("exclude", "", "comma-separated doublestar exclude globs"),
		excludeLines:   fs.String("exclude-matching-lines", "", "comma-separated literal substrings; lines containing one are skipped"),
		includePlurals: fs.Bool("include-plurals", false, "accepted but unused; no plural variants are generated"),
		atomicSearch:   fs.Bool("atomic-search", false, "treat the search identifier as atomic (no token splitting)"),
		atomicReplace:  fs.Bool("atomic-replace", false, "treat the replace identifier as atomic (no token splitting)"),
		unrestricted:   fs.Int("unrestricted", 0, "0=honor ignore files, 1=skip .gitignore, 2=skip all ignore files and walk hidden, 3=also binaries (0: use the config file's unrestricted_level)"),
		dryRun:         fs.Bool("dry-run", false, "print a preview instead of writing plan.json"),
	}
}

func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	cf := bindCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return &rnerrors.InvalidInputError{Field: "args", Msg: "usage: renamify plan <old> <new> [flags]"}
	}
	old, newName := rest[0], rest[1]

	cfg, err := rnconfig.Load(*cf.root)
	if err != nil {
		return err
	}

	styles, err := resolveStyles(*cf.styles, cfg)
	if err != nil {
		return err
	}

	acronyms := acronym.Default()
	for _, extra := range cfg.ExtraAcronyms {
		acronyms.Add(extra)
	}
	if cfg.DisableAcronyms {
		acronyms.SetEnabled(false)
	}

	atomicCfg := &variant.AtomicConfig{
		AtomicSearch:  *cf.atomicSearch,
		AtomicReplace: *cf.atomicReplace,
		Names:         cfg.AtomicNames,
	}
	vmap := variant.BuildWithAcronyms(old, newName, styles, atomicCfg, acronyms)

	unrestricted := *cf.unrestricted
	if unrestricted == 0 {
		unrestricted = cfg.UnrestrictedLevel
	}

	result, err := scanner.Scan(scanner.Options{
		Walker: walker.Options{
			Root:              *cf.root,
			Include:           splitCSV(*cf.include),
			Exclude:           splitCSV(*cf.exclude),
			UnrestrictedLevel: unrestricted,
		},
		Old:                  old,
		New:                  newName,
		Styles:               styles,
		Variants:             vmap,
		Acronyms:             acronyms,
		ExcludeMatchingLines: splitCSV(*cf.excludeLines),
	})
	if err != nil {
		return err
	}

	renames, conflicts := planRenames(*cf.root, old, newName, vmap, acronyms, styles)

	plan := &planmodel.Plan{
		ID:        newPlanID(),
		CreatedAt: time.Now(),
		Old:       old,
		New:       newName,
		Styles:    styles,
		Includes:  splitCSV(*cf.include),
		Excludes:  splitCSV(*cf.exclude),
		Matches:   result.Matches,
		Paths:     renames,
		Conflicts: conflicts,
		Stats:     result.Stats,
		Version:   planmodel.CurrentVersion,
	}

	if *cf.dryRun {
		printPlanPreview(plan)
		return nil
	}

	planPath := filepath.Join(*cf.root, renamifyDirName, "plan.json")
	if err := os.MkdirAll(filepath.Dir(planPath), 0o755); err != nil {
		return &rnerrors.IoError{Op: "mkdir", Path: filepath.Dir(planPath), Err: err}
	}
	if err := plan.Save(planPath); err != nil {
		return err
	}
	fmt.Printf("plan %s: %d match(es) in %d file(s), %d rename(s), %d conflict(s)\n",
		plan.ID, plan.Stats.TotalMatches, plan.Stats.FilesWithMatches, len(plan.Paths), len(plan.Conflicts))
	return nil
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	planPath := fs.String("plan", "", "path to a plan.json (default: .renamify/plan.json)")
	commitGit := fs.Bool("commit", false, "create a git commit after applying")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}

	path := *planPath
	if path == "" {
		path = filepath.Join(*root, renamifyDirName, "plan.json")
	}
	plan, err := planmodel.Load(path)
	if err != nil {
		return &rnerrors.IoError{Op: "read plan", Path: path, Err: err}
	}

	outcome, err := apply.Apply(*root, plan, apply.Options{RenamifyDir: renamifyDirName, CommitGit: *commitGit})
	if err != nil {
		return err
	}
	fmt.Printf("applied plan %s (backup %s, entry %s)\n", plan.ID, outcome.BackupID, outcome.Entry.ID)
	return nil
}

func runUndo(args []string) error {
	fs := flag.NewFlagSet("undo", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}
	rest := fs.Args()

	entries, err := loadHistory(*root)
	if err != nil {
		return err
	}
	id, err := resolveEntryID(rest, entries)
	if err != nil {
		return err
	}

	revertEntry, err := undo.Revert(*root, entries, id, undo.Options{RenamifyDir: renamifyDirName})
	if err != nil {
		return err
	}
	fmt.Printf("reverted %s as %s\n", id, revertEntry.ID)
	return nil
}

func runRedo(args []string) error {
	fs := flag.NewFlagSet("redo", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}
	rest := fs.Args()

	entries, err := loadHistory(*root)
	if err != nil {
		return err
	}
	id, err := resolveEntryID(rest, entries)
	if err != nil {
		return err
	}

	redoEntry, err := undo.Redo(*root, entries, id, undo.Options{RenamifyDir: renamifyDirName})
	if err != nil {
		return err
	}
	fmt.Printf("redid %s as %s\n", id, redoEntry.ID)
	return nil
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}

	planPath := filepath.Join(*root, renamifyDirName, "plan.json")
	plan, err := planmodel.Load(planPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no plan on disk")
			return nil
		}
		return &rnerrors.IoError{Op: "read plan", Path: planPath, Err: err}
	}
	fmt.Printf("plan %s: %s -> %s, %d match(es), %d rename(s), %d conflict(s)\n",
		plan.ID, plan.Old, plan.New, plan.Stats.TotalMatches, len(plan.Paths), len(plan.Conflicts))
	return nil
}

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}

	entries, err := loadHistory(*root)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no history")
		return nil
	}
	for _, e := range entries {
		tag := ""
		if e.RevertOf != "" {
			tag = " (revert of " + e.RevertOf + ")"
		}
		if e.RedoOf != "" {
			tag = " (redo of " + e.RedoOf + ")"
		}
		fmt.Printf("%s  %s -> %s%s  [%s]\n", e.ID, e.Old, e.New, tag, e.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runRename(args []string) error {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	cf := bindCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return &rnerrors.InvalidInputError{Field: "args", Msg: "usage: renamify rename <old> <new> [flags]"}
	}
	old, newName := rest[0], rest[1]

	cfg, err := rnconfig.Load(*cf.root)
	if err != nil {
		return err
	}
	styles, err := resolveStyles(*cf.styles, cfg)
	if err != nil {
		return err
	}
	acronyms := acronym.Default()
	vmap := variant.BuildWithAcronyms(old, newName, styles, &variant.AtomicConfig{
		AtomicSearch:  *cf.atomicSearch,
		AtomicReplace: *cf.atomicReplace,
		Names:         cfg.AtomicNames,
	}, acronyms)

	renames, conflicts := planRenames(*cf.root, old, newName, vmap, acronyms, styles)
	for _, c := range conflicts {
		fmt.Fprintf(os.Stderr, "conflict (%s): %v -> %s\n", c.Kind, c.Sources, c.Target)
	}
	if len(conflicts) > 0 {
		return &rnerrors.ConflictError{Count: len(conflicts)}
	}

	for _, r := range renames {
		if *cf.dryRun {
			fmt.Printf("%s -> %s\n", r.Path, r.NewPath)
			continue
		}
		if err := os.Rename(r.Path, r.NewPath); err != nil {
			return &rnerrors.IoError{Op: "rename", Path: r.Path, Err: err}
		}
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root")
	if err := fs.Parse(args); err != nil {
		return &rnerrors.InvalidInputError{Field: "flags", Msg: err.Error()}
	}
	dir := filepath.Join(*root, renamifyDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &rnerrors.IoError{Op: "mkdir", Path: dir, Err: err}
	}
	cfgPath := filepath.Join(*root, rnconfig.Candidates[0])
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.WriteFile(cfgPath, []byte("# renamify workspace configuration\n"), 0o644); err != nil {
			return &rnerrors.IoError{Op: "write", Path: cfgPath, Err: err}
		}
	}
	fmt.Printf("initialized %s\n", dir)
	return nil
}

func planRenames(root, old, newName string, vmap *variant.Map, acronyms *acronym.Set, styles []casemodel.Style) ([]planmodel.Rename, []planmodel.RenameConflict) {
	fallback := casemodel.Snake
	if len(styles) > 0 {
		fallback = styles[0]
	}

	var candidates []rnrename.Candidate
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == root {
			return nil
		}
		if info.Name() == renamifyDirName || info.Name() == ".git" {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		newBase, coerced := rnrename.DeriveName(info.Name(), vmap, acronyms, fallback)
		if newBase == info.Name() {
			return nil
		}
		kind := planmodel.KindFile
		if info.IsDir() {
			kind = planmodel.KindDir
		}
		candidates = append(candidates, rnrename.Candidate{
			Path:     path,
			NewPath:  filepath.Join(filepath.Dir(path), newBase),
			Kind:     kind,
			Coercion: coerced,
		})
		return nil
	})

	return rnrename.Plan(candidates)
}

func resolveStyles(raw string, cfg rnconfig.Config) ([]casemodel.Style, error) {
	if raw == "" {
		if resolved := cfg.ResolvedStyles(); len(resolved) > 0 {
			return resolved, nil
		}
		return nil, nil
	}
	var out []casemodel.Style
	for _, name := range splitCSV(raw) {
		style, ok := casemodel.ParseStyle(name)
		if !ok {
			return nil, &rnerrors.InvalidInputError{Field: "styles", Value: name, Msg: "unknown style"}
		}
		out = append(out, style)
	}
	return out, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func loadHistory(root string) ([]history.Entry, error) {
	store := history.Open(filepath.Join(root, renamifyDirName))
	return store.Load()
}

func resolveEntryID(args []string, entries []history.Entry) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	latest, ok := history.Latest(entries)
	if !ok {
		return "", &rnerrors.InvalidInputError{Field: "id", Msg: "no history entries to act on"}
	}
	return latest.ID, nil
}

func printPlanPreview(plan *planmodel.Plan) {
	fmt.Printf("%s -> %s (%d styles)\n", plan.Old, plan.New, len(plan.Styles))
	for _, m := range plan.Matches {
		fmt.Printf("  %s:%d:%d  %s -> %s\n", m.File, m.Line, m.Col, m.Variant, m.Replace)
	}
	for _, r := range plan.Paths {
		fmt.Printf("  rename %s -> %s\n", r.Path, r.NewPath)
	}
	for _, c := range plan.Conflicts {
		fmt.Printf("  conflict (%s): %v -> %s\n", c.Kind, c.Sources, c.Target)
	}
}

func newPlanID() string {
	return uuid.NewString()
}

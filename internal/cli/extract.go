package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mdproof/internal/changeset"
	"mdproof/internal/config"
	"mdproof/internal/gitscope"
	"mdproof/internal/markdown"
	"mdproof/internal/workdir"
)

var flagName string

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract sentences from Markdown documents into a work list",
	Long: "Extract parses whole documents under the documents directory and writes one\n" +
		"work-list record per reviewable sentence. With file arguments, only those\n" +
		"documents are extracted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args, false)
	},
}

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "Extract sentences from uncommitted changes only",
	Long: "Changed restricts extraction to blocks whose lines overlap the uncommitted\n" +
		"delta of the documents directory (git diff against HEAD plus untracked files).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args, true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{extractCmd, changedCmd} {
		cmd.Flags().StringVar(&flagDocs, "docs", "", "Documents directory (overrides config)")
		cmd.Flags().StringVar(&flagName, "name", "", "Work-list name (default: timestamp)")
	}
}

func runExtract(args []string, scoped bool) error {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}

	var scope *gitscope.Scope
	if scoped {
		s, err := gitscope.Changes(cfg.DocsDir)
		switch {
		case errors.Is(err, gitscope.ErrNotRepo), errors.Is(err, gitscope.ErrNoChanges):
			fmt.Fprintf(os.Stderr, "%v\n", err)
			exitCode = ExitAdvisory
			return nil
		case err != nil:
			fail(err, ExitRuntimeError)
			return nil
		}
		scope = &s
	}

	files := args
	if len(files) == 0 {
		files, err = workdir.ListMarkdownFiles(cfg.DocsDir)
		if err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}
		files = workdir.FilterFiles(files, cfg.Include, cfg.Exclude)
	}

	var docs []*markdown.Document
	for _, file := range files {
		file = filepath.ToSlash(file)
		if scope != nil && len(scope.Ranges[file]) == 0 {
			continue
		}
		src, err := os.ReadFile(filepath.Join(cfg.DocsDir, filepath.FromSlash(file)))
		if err != nil {
			fail(fmt.Errorf("reading %s: %w", file, err), ExitRuntimeError)
			return nil
		}
		docs = append(docs, markdown.Parse(file, src))
	}

	records := changeset.Build(docs, scope)
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No sentences to review.")
		exitCode = ExitAdvisory
		return nil
	}

	wd, err := openWorkDir(cfg)
	if err != nil {
		fail(err, ExitRuntimeError)
		return nil
	}
	stem := flagName
	if stem == "" {
		stem = time.Now().Format("20060102-150405")
	}
	path := wd.WorkListPath(stem)
	if err := changeset.SaveWorkList(path, records); err != nil {
		fail(err, ExitRuntimeError)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Extracted %d sentences from %d documents.\n", len(records), len(docs))
	fmt.Fprintf(os.Stdout, "Work list: %s\n", path)
	return nil
}

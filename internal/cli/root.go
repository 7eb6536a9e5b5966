package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mdproof/internal/changeset"
	"mdproof/internal/config"
	"mdproof/internal/ledger"
	"mdproof/internal/logging"
	"mdproof/internal/workdir"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitAdvisory     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "mdproof",
	Short: "AI-assisted Markdown proofreading",
	Long: "Mdproof extracts sentences from Markdown documents, checks them with an LLM\n" +
		"provider, and applies human-reviewed corrections back to the files.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var flagVerbose bool

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(changedCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print mdproof version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "mdproof version %s\n", version)
	},
}

// Shared flags
var (
	flagDocs     string
	flagWorkDir  string
	flagProvider string
	flagModel    string
)

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagDocs != "" {
		m["docsDir"] = flagDocs
	}
	if flagWorkDir != "" {
		m["workDir"] = flagWorkDir
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	return m
}

func newLogger() *zap.Logger {
	log, err := logging.New(flagVerbose)
	if err != nil {
		return logging.NewNop()
	}
	return log
}

func openWorkDir(cfg config.Config) (workdir.Dir, error) {
	return workdir.New(cfg.WorkDir)
}

// resolveWorkList maps a command argument to a work-list path: an existing
// file is used as given, anything else is treated as a stem in the working
// directory.
func resolveWorkList(d workdir.Dir, arg string) string {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg
	}
	stem := strings.TrimSuffix(filepath.Base(arg), workdir.WorkListExt)
	return d.WorkListPath(stem)
}

func loadWorkList(d workdir.Dir, arg string) (string, []changeset.ChangeRecord, error) {
	path := resolveWorkList(d, arg)
	records, err := changeset.LoadWorkList(path)
	if err != nil {
		return "", nil, err
	}
	return path, records, nil
}

func openLedger(d workdir.Dir, workListPath string) (*ledger.Ledger, error) {
	return ledger.Open(d.ProgressPath(workListPath), workListPath)
}

func fail(err error, code int) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = code
}

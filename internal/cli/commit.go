package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mdproof/internal/config"
	"mdproof/internal/gitscope"
)

var flagMessage string

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Stage and commit the documents directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		pending, err := gitscope.HasPendingChanges(cfg.DocsDir)
		if err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}
		if !pending {
			fmt.Fprintln(os.Stderr, "Nothing to commit.")
			exitCode = ExitAdvisory
			return nil
		}

		msg := flagMessage
		if msg == "" {
			msg = fmt.Sprintf("Auto-commit on %s", time.Now().Format("2006-01-02 15:04:05"))
		}
		if err := gitscope.CommitAll(cfg.DocsDir, msg); err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}

		fmt.Fprintf(os.Stdout, "Committed: %q\n", msg)
		return nil
	},
}

func init() {
	commitCmd.Flags().StringVarP(&flagMessage, "message", "m", "", "Commit message")
	commitCmd.Flags().StringVar(&flagDocs, "docs", "", "Documents directory (overrides config)")
}

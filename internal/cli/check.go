package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mdproof/internal/changeset"
	"mdproof/internal/config"
	"mdproof/internal/proof"
	"mdproof/internal/providers"
)

var checkCmd = &cobra.Command{
	Use:   "check <worklist>",
	Short: "Run the AI check over a work list",
	Long: "Check sends each unchecked sentence to the configured provider, one request\n" +
		"per sentence, and records the verdict on the work list after every sentence.\n" +
		"Interrupting the run is safe; rerunning resumes at the first unchecked record.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		wd, err := openWorkDir(cfg)
		if err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}
		path, records, err := loadWorkList(wd, args[0])
		if err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}

		checker, err := providers.New(cfg.Provider, cfg.Model, cfg.MaxRetries)
		if err != nil {
			fail(err, ExitAuthError)
			return nil
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		engine := proof.New(checker, proof.Options{
			SystemPrompt: cfg.SystemPrompt,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
			TopP:         cfg.TopP,
			Delay:        cfg.RequestDelay(),
		}, log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		prog, err := engine.Run(ctx, records, func(recs []changeset.ChangeRecord) error {
			return changeset.SaveWorkList(path, recs)
		})
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(os.Stderr, "Interrupted; progress saved.")
			exitCode = ExitAdvisory
		case err != nil && providers.IsAuthError(err):
			fail(err, ExitAuthError)
			return nil
		case err != nil:
			fail(err, ExitRuntimeError)
			return nil
		}

		fmt.Fprintf(os.Stdout, "Checked %d sentences: %d clean, %d flagged, %d failed (%d already done).\n",
			prog.Checked, prog.Clean, prog.Flagged, prog.Failed, prog.Skipped)
		if prog.Failed > 0 && exitCode == ExitSuccess {
			exitCode = ExitAdvisory
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (ollama, lmstudio, openai)")
	checkCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
}

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mdproof/internal/changeset"
	"mdproof/internal/config"
	"mdproof/internal/ledger"
	"mdproof/internal/output"
	"mdproof/internal/patch"
	"mdproof/internal/workdir"
)

var (
	flagFormat string
	flagOut    string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review flagged sentences one at a time",
	Long: "Review walks the flagged records of a work list in order. Each invocation acts\n" +
		"on the first still-pending record; decisions persist immediately.",
}

var reviewShowCmd = &cobra.Command{
	Use:   "show <worklist>",
	Short: "Show the next pending suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(args[0], func(s *session) error {
			i, ok := s.ledger.Next(s.records)
			if !ok {
				fmt.Fprintln(os.Stdout, "No pending suggestions.")
				return nil
			}
			rec := s.records[i]
			fmt.Fprintf(os.Stdout, "%s  (%s #%d)\n", rec.Label, rec.File, rec.Index)
			if rec.ErrorType != "" {
				fmt.Fprintf(os.Stdout, "[%s] %s\n", rec.ErrorType, rec.Description)
			}
			fmt.Fprintf(os.Stdout, "- %s\n", rec.Original)
			fmt.Fprintf(os.Stdout, "+ %s\n", rec.Suggestion)
			c := s.ledger.Count(s.records)
			fmt.Fprintf(os.Stdout, "\n%d of %d flagged still pending.\n", c.Pending, c.Flagged)
			return nil
		})
	},
}

var reviewAcceptCmd = &cobra.Command{
	Use:   "accept <worklist>",
	Short: "Accept the suggestion for the next pending record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decideNext(args[0], changeset.DecisionAccepted, "")
	},
}

var reviewEditCmd = &cobra.Command{
	Use:   "edit <worklist> <text>",
	Short: "Replace the next pending record with your own correction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decideNext(args[0], changeset.DecisionEdited, args[1])
	},
}

var reviewSkipCmd = &cobra.Command{
	Use:   "skip <worklist>",
	Short: "Leave the next pending record unchanged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decideNext(args[0], changeset.DecisionSkipped, "")
	},
}

var reviewReopenCmd = &cobra.Command{
	Use:   "reopen <worklist> <address>",
	Short: "Return a decided record to pending",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(args[0], func(s *session) error {
			if _, err := changeset.ParseLabel(args[1]); err != nil {
				return err
			}
			if err := s.ledger.Reopen(args[1]); err != nil {
				fail(err, ExitRuntimeError)
				return nil
			}
			if err := s.ledger.Save(); err != nil {
				fail(err, ExitRuntimeError)
				return nil
			}
			fmt.Fprintf(os.Stdout, "Reopened %s.\n", args[1])
			return nil
		})
	},
}

var reviewStatusCmd = &cobra.Command{
	Use:   "status <worklist>",
	Short: "Summarize a work list and its decisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(args[0], func(s *session) error {
			report := output.BuildReport(s.path, s.records)
			if err := output.WriteReport(report, s.format(), flagOut); err != nil {
				fail(err, ExitRuntimeError)
			}
			return nil
		})
	},
}

var reviewApplyCmd = &cobra.Command{
	Use:   "apply <worklist>",
	Short: "Write accepted and edited corrections back to the documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(args[0], func(s *session) error {
			applier := patch.New(workdir.NewSearchResolver(s.cfg.DocsDir))
			applied, stale := 0, 0
			for i := range s.records {
				rec := &s.records[i]
				switch rec.Decision {
				case changeset.DecisionAccepted, changeset.DecisionEdited:
				default:
					continue
				}
				err := applier.Apply(rec)
				switch {
				case errors.Is(err, patch.ErrStaleMatch):
					stale++
					fmt.Fprintf(os.Stderr, "stale: %v\n", err)
				case err != nil:
					fail(err, ExitRuntimeError)
					return nil
				default:
					applied++
				}
			}
			fmt.Fprintf(os.Stdout, "Applied %d corrections", applied)
			if stale > 0 {
				fmt.Fprintf(os.Stdout, ", %d stale", stale)
				exitCode = ExitAdvisory
			}
			fmt.Fprintln(os.Stdout, ".")
			return nil
		})
	},
}

// session bundles the loaded work list with its ledger for review commands.
type session struct {
	cfg     config.Config
	path    string
	records []changeset.ChangeRecord
	ledger  *ledger.Ledger
}

func (s *session) format() string {
	if flagFormat != "" {
		return flagFormat
	}
	return "text"
}

func withLedger(arg string, fn func(*session) error) error {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}
	wd, err := openWorkDir(cfg)
	if err != nil {
		fail(err, ExitRuntimeError)
		return nil
	}
	path, records, err := loadWorkList(wd, arg)
	if err != nil {
		fail(err, ExitRuntimeError)
		return nil
	}
	led, err := openLedger(wd, path)
	if err != nil {
		fail(err, ExitRuntimeError)
		return nil
	}
	led.Hydrate(records)
	return fn(&session{cfg: cfg, path: path, records: records, ledger: led})
}

func decideNext(arg string, d changeset.Decision, final string) error {
	return withLedger(arg, func(s *session) error {
		i, ok := s.ledger.Next(s.records)
		if !ok {
			fmt.Fprintln(os.Stderr, "No pending suggestions.")
			exitCode = ExitAdvisory
			return nil
		}
		rec := s.records[i]
		if err := s.ledger.Decide(rec.Label, d, final); err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}
		if err := s.ledger.Save(); err != nil {
			fail(err, ExitRuntimeError)
			return nil
		}
		c := s.ledger.Count(s.records)
		fmt.Fprintf(os.Stdout, "%s %s. %d pending.\n", d, rec.Label, c.Pending)
		return nil
	})
}

func init() {
	reviewCmd.AddCommand(reviewShowCmd)
	reviewCmd.AddCommand(reviewAcceptCmd)
	reviewCmd.AddCommand(reviewEditCmd)
	reviewCmd.AddCommand(reviewSkipCmd)
	reviewCmd.AddCommand(reviewReopenCmd)
	reviewCmd.AddCommand(reviewStatusCmd)
	reviewCmd.AddCommand(reviewApplyCmd)

	reviewStatusCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	reviewStatusCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewApplyCmd.Flags().StringVar(&flagDocs, "docs", "", "Documents directory (overrides config)")
}

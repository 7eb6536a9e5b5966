package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mdproof/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the working directory of work lists and progress files",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show working-directory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		wd, err := openWorkDir(cfg)
		if err != nil {
			return fmt.Errorf("opening work directory: %w", err)
		}
		stats, err := wd.GetStats()
		if err != nil {
			return fmt.Errorf("reading work directory stats: %w", err)
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))

		lists, err := wd.ListWorkLists()
		if err != nil {
			return err
		}
		for _, l := range lists {
			fmt.Fprintf(os.Stdout, "  %s\n", l)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all work lists and progress files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		wd, err := openWorkDir(cfg)
		if err != nil {
			return fmt.Errorf("opening work directory: %w", err)
		}
		if err := wd.Clear(); err != nil {
			return fmt.Errorf("clearing work directory: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Work directory cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.PersistentFlags().StringVar(&flagWorkDir, "work-dir", "", "Working directory (overrides config)")
}

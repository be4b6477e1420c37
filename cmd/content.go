package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/portfolio"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with the portfolio content file",
}

var contentPrintCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print content as YAML (the built-in content when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := portfolio.LoadFile(fileArg(args))
		if err != nil {
			return err
		}
		return portfolio.Encode(cmd.OutOrStdout(), c)
	},
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a content file for errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := portfolio.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d experience, %d projects, %d achievements, %d education)\n",
			args[0], len(c.Experience), len(c.Projects), len(c.Achievements), len(c.Education))
		return nil
	},
}

var contentInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the built-in content to a new file to start editing from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer f.Close()
		if err := portfolio.Encode(f, portfolio.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	contentCmd.AddCommand(contentPrintCmd, contentValidateCmd, contentInitCmd)
	rootCmd.AddCommand(contentCmd)
}

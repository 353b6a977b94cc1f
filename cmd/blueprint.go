package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/examforge/internal/blueprint"
	"github.com/abhisek/examforge/internal/ui/theme"
	"github.com/spf13/cobra"
)

var blueprintCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Work with generation blueprints",
}

var blueprintCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a blueprint and print it with defaults filled in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bp, err := blueprint.Load(args[0])
		if err != nil {
			fmt.Println(paint(theme.Fail, "invalid"), args[0])
			return err
		}
		if err := bp.Request().Validate(); err != nil {
			fmt.Println(paint(theme.Fail, "invalid"), args[0])
			return err
		}

		out, err := bp.Marshal()
		if err != nil {
			return fmt.Errorf("encode blueprint: %w", err)
		}
		fmt.Println(paint(theme.OK, "ok"), args[0])
		fmt.Println(paint(theme.Card, strings.TrimRight(string(out), "\n")))
		return nil
	},
}

var blueprintInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a default blueprint to start from",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := blueprint.Default().Marshal()
		if err != nil {
			return fmt.Errorf("encode blueprint: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	blueprintCmd.AddCommand(blueprintCheckCmd)
	blueprintCmd.AddCommand(blueprintInitCmd)
}

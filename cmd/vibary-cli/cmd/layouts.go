package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vibary/internal/application/commands"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts [tag]",
	Short: "List layout strategies, or resolve a layout tag",
	Long: `Without arguments, list the registered layout strategies. With a tag,
show which strategy renders it and suggest close matches for unknown tags.

Examples:
  vibary-cli layouts
  vibary-cli layouts split`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(args) == 1 {
			result, err := commands.NewResolveLayoutCommand(args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		}

		layouts, err := commands.NewListLayoutsCommand().Execute(ctx)
		if err != nil {
			return err
		}
		for _, l := range layouts {
			if l.Default {
				fmt.Printf("%s (default)\n", l.Layout)
				continue
			}
			fmt.Println(l.Layout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

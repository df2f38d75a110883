package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vibary/internal/adapters/tui/termrender"
	"vibary/internal/application/commands"
)

var (
	renderScene    int
	renderProgress float64
	renderJSON     bool
	renderWidth    int
)

var renderCmd = &cobra.Command{
	Use:   "render <document.json>",
	Short: "Render one scene",
	Long: `Render a scene at a scroll progress between 0 and 1, either drawn for
the terminal or as the visual tree in JSON.

Examples:
  vibary-cli render dune.json --scene 2 --progress 0.5
  vibary-cli render dune.json --scene 0 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := loadDocument(ctx, args[0])
		if err != nil {
			return err
		}

		result, err := commands.NewRenderSceneCommand(doc, renderScene, renderProgress).Execute(ctx)
		if err != nil {
			return err
		}

		if renderJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Tree)
		}

		palette := doc.Palette(renderScene)
		r := termrender.New(renderWidth, palette.Background)
		fmt.Println(r.Pattern(result.Tree.Find("background")))
		fmt.Println(r.Render(result.Tree))
		log.Info(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().IntVarP(&renderScene, "scene", "s", 0, "scene index, from 0")
	renderCmd.Flags().Float64VarP(&renderProgress, "progress", "p", 0.5, "scroll progress through the scene")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the visual tree as JSON")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 80, "terminal width in columns")
}

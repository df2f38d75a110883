package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vibary/internal/adapters/raster"
	"vibary/internal/adapters/svg"
	"vibary/internal/application/commands"
	"vibary/internal/render"
)

var (
	entityScene    int
	entityProgress float64
	entitySize     int
	entityOutput   string
)

var entityCmd = &cobra.Command{
	Use:   "entity <document.json>",
	Short: "Draw a scene's generative entity",
	Long: `Draw the generative entity of a scene as SVG, or as PNG when the output
file ends in .png.

Examples:
  vibary-cli entity dune.json --scene 1 > entity.svg
  vibary-cli entity dune.json --scene 1 --size 1024 -o poster.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := loadDocument(ctx, args[0])
		if err != nil {
			return err
		}
		rc := commands.NewRenderSceneCommand(doc, entityScene, entityProgress)
		if err := rc.Validate(); err != nil {
			return err
		}

		scene := doc.Screenplay[entityScene]
		palette := scene.Visual.Palette.WithDefaults()
		entity := render.Entity(scene.Visual.VisualParams, palette.Secondary, palette.Primary, entityProgress)

		if !strings.HasSuffix(strings.ToLower(entityOutput), ".png") {
			data := svg.Entity(entity, svg.Options{Size: entitySize, Filters: true})
			if entityOutput == "" {
				_, err := fmt.Println(data)
				return err
			}
			return os.WriteFile(entityOutput, []byte(data), 0o644)
		}

		var buf bytes.Buffer
		if err := raster.WritePNG(&buf, []byte(svg.Entity(entity, svg.Options{Size: entitySize})), entitySize, palette.Background); err != nil {
			return err
		}
		if err := os.WriteFile(entityOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", entityOutput, err)
		}
		log.Info(fmt.Sprintf("Wrote %s", entityOutput))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(entityCmd)
	entityCmd.Flags().IntVarP(&entityScene, "scene", "s", 0, "scene index, from 0")
	entityCmd.Flags().Float64VarP(&entityProgress, "progress", "p", 0.5, "scroll progress through the scene")
	entityCmd.Flags().IntVar(&entitySize, "size", 512, "edge length in pixels")
	entityCmd.Flags().StringVarP(&entityOutput, "output", "o", "", "output file, .svg or .png (SVG to stdout when empty)")
}

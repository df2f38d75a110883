package commands

import (
	"context"
	"fmt"

	"vibary/internal/application"
	"vibary/internal/domain"
	"vibary/internal/render"
	"vibary/internal/scroll"
)

// RenderSceneResult contains the visual tree of one scene
type RenderSceneResult struct {
	Tree    *render.Node
	Layout  domain.Layout
	Active  bool
	Message string
}

// RenderSceneCommand renders one scene of a document at a scroll progress
type RenderSceneCommand struct {
	Document   *domain.Document
	SceneIndex int
	Progress   float64
}

// NewRenderSceneCommand creates a new RenderSceneCommand
func NewRenderSceneCommand(doc *domain.Document, index int, progress float64) *RenderSceneCommand {
	return &RenderSceneCommand{
		Document:   doc,
		SceneIndex: index,
		Progress:   progress,
	}
}

// Validate checks the scene index and progress
func (c *RenderSceneCommand) Validate() error {
	if err := c.Document.Validate(); err != nil {
		return &application.ValidationError{Field: "document", Message: err.Error()}
	}
	if err := application.ValidateSceneIndex("sceneIndex", c.SceneIndex, len(c.Document.Screenplay)); err != nil {
		return err
	}
	return application.ValidateProgress("progress", c.Progress)
}

// Execute renders the scene
func (c *RenderSceneCommand) Execute(ctx context.Context) (*RenderSceneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	scene := c.Document.Screenplay[c.SceneIndex]
	total := len(c.Document.Screenplay)
	layout := render.Resolve(scene.Visual.Layout).Layout()

	return &RenderSceneResult{
		Tree:    render.RenderScene(scene, c.SceneIndex, total, c.Progress),
		Layout:  layout,
		Active:  scroll.DefaultBand.Contains(c.Progress),
		Message: fmt.Sprintf("%s rendered as %s at %.2f", render.ChapterMarker(c.SceneIndex, total), layout, c.Progress),
	}, nil
}

package httpserver

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vibary/internal/adapters/raster"
	"vibary/internal/adapters/svg"
	"vibary/internal/application"
	"vibary/internal/application/commands"
	"vibary/internal/render"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Page serves the exported standalone page
func (s *Server) Page(c *gin.Context) {
	page, err := s.exporter.Export(s.doc)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Document serves the document JSON
func (s *Server) Document(c *gin.Context) {
	RespondOK(c, s.doc)
}

// sceneResponse is the JSON answer of the scene endpoint
type sceneResponse struct {
	Index    int          `json:"index"`
	Layout   string       `json:"layout"`
	Progress float64      `json:"progress"`
	Active   bool         `json:"active"`
	Tree     *render.Node `json:"tree"`
}

// Scene serves the visual tree of one scene at ?progress= (default 0.5)
func (s *Server) Scene(c *gin.Context) {
	cmd, ok := s.sceneCommand(c)
	if !ok {
		return
	}
	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		respondCommandError(c, err)
		return
	}
	RespondOK(c, sceneResponse{
		Index:    cmd.SceneIndex,
		Layout:   string(result.Layout),
		Progress: cmd.Progress,
		Active:   result.Active,
		Tree:     result.Tree,
	})
}

// Entity serves the scene's entity as SVG, or PNG with ?format=png
func (s *Server) Entity(c *gin.Context) {
	cmd, ok := s.sceneCommand(c)
	if !ok {
		return
	}
	if err := cmd.Validate(); err != nil {
		respondCommandError(c, err)
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "512"))
	if err != nil || size <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid_size", errors.New("size must be a positive integer"))
		return
	}

	scene := s.doc.Screenplay[cmd.SceneIndex]
	palette := scene.Visual.Palette.WithDefaults()
	entity := render.Entity(scene.Visual.VisualParams, palette.Secondary, palette.Primary, cmd.Progress)

	if c.Query("format") == "png" {
		var buf bytes.Buffer
		if err := raster.WritePNG(&buf, []byte(svg.Entity(entity, svg.Options{Size: size})), size, palette.Background); err != nil {
			RespondError(c, http.StatusInternalServerError, "raster_failed", err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg.Entity(entity, svg.Options{Size: size, Filters: true})))
}

func (s *Server) sceneCommand(c *gin.Context) (*commands.RenderSceneCommand, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_index", errors.New("scene index must be an integer"))
		return nil, false
	}
	progress, err := strconv.ParseFloat(c.DefaultQuery("progress", "0.5"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_progress", errors.New("progress must be a number"))
		return nil, false
	}
	return commands.NewRenderSceneCommand(s.doc, index, progress), true
}

func respondCommandError(c *gin.Context, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		if verr.Field == "sceneIndex" {
			status = http.StatusNotFound
		}
		RespondError(c, status, application.KindValidation.String(), err)
		return
	}
	RespondError(c, http.StatusInternalServerError, application.Classify(err).String(), err)
}

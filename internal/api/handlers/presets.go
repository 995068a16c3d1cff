package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"property-dcf/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PresetHandler serves the preset YAML files in a directory.
type PresetHandler struct {
	presetDir string
	logger    *zap.Logger
}

// NewPresetHandler resolves dir to an absolute path. An empty dir means
// examples/presets under the working directory.
func NewPresetHandler(dir string, logger *zap.Logger) *PresetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = filepath.Join("examples", "presets")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger.Info("using preset directory", zap.String("dir", dir))
	return &PresetHandler{presetDir: dir, logger: logger}
}

// Dir returns the resolved preset directory.
func (h *PresetHandler) Dir() string {
	return h.presetDir
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	list, err := config.ListPresets(h.presetDir)
	if err != nil {
		// A missing directory is an empty catalogue, not a server error.
		if !os.IsNotExist(err) {
			h.logger.Warn("list presets failed",
				zap.String("op", "api.ListPresets"),
				zap.String("dir", h.presetDir),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusOK, gin.H{"presets": []config.PresetInfo{}})
		return
	}
	if list == nil {
		list = []config.PresetInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"presets": list})
}

// GetPreset handles GET /api/v1/presets/:id
func (h *PresetHandler) GetPreset(c *gin.Context) {
	path, err := config.PresetPath(h.presetDir, c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, codePresetNotFound, err.Error(), nil)
		return
	}
	p, err := config.LoadPreset(path)
	if err != nil {
		writeError(c, http.StatusInternalServerError, codePresetInvalid, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, p)
}

package devtools

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/mapgen"
	"github.com/navarrs/a-star/pkg/planner/render"
)

// SaveSnapshot renders the map with the route overlaid and saves it as a
// timestamped PNG in dir. It returns the path written.
func SaveSnapshot(dir string, m *mapgen.Map, path []world.Cell, start, goal world.Cell) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("snapshot-%s.png", timestamp))

	if err := render.SavePNG(filename, render.Overlay(m, path, start, goal)); err != nil {
		return "", err
	}
	return filename, nil
}

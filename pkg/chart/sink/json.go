package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackbar/pkg/chart/scene"
)

// RenderJSON exports the scene tree as indented JSON.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

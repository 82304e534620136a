package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/capitalize-ai/hivemind/internal/model"
)

// LoadSeedFile reads a JSON array of thoughts for Seed.
func LoadSeedFile(path string) ([]model.ThoughtNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var nodes []model.ThoughtNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return nodes, nil
}

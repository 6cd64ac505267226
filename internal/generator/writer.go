package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

// WriteDataset persists the dataset as dataset.json under dir, creating the
// directory if needed.
func WriteDataset(ds domain.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, "dataset.json")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ds); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

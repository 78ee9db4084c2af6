// Package registrydata loads registry retirement exports from disk.
package registrydata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/buyer-intel/internal/types"
)

// Conventional export file names inside a data directory.
const (
	VerraFileName = "verra_retirements.json"
	CARFileName   = "climate_action_reserve_retirements.json"
)

// FileForRegistry returns the conventional export file name for a registry.
func FileForRegistry(registry types.Registry) string {
	if registry == types.RegistryCAR {
		return CARFileName
	}
	return VerraFileName
}

// LoadFile reads one registry export file.
func LoadFile(path string) ([]types.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry export %s: %w", path, err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode registry export %s: %w", path, err)
	}
	return records, nil
}

// LoadDir reads a registry's export from its conventional location inside a
// data directory.
func LoadDir(dataDir string, registry types.Registry) ([]types.RawRecord, error) {
	return LoadFile(filepath.Join(dataDir, FileForRegistry(registry)))
}

// Decode parses export bytes. Verra ships a bare record array; the Climate
// Action Reserve export wraps its array in an object under "retirements".
// Both shapes are accepted for either registry.
func Decode(data []byte) ([]types.RawRecord, error) {
	var records []types.RawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Retirements []types.RawRecord `json:"retirements"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, &DecodeError{Message: "export is neither a record array nor a retirements wrapper", Cause: err}
	}
	if wrapper.Retirements == nil {
		return nil, &DecodeError{Message: "export object has no retirements array"}
	}
	return wrapper.Retirements, nil
}

package prefs

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const selectionFile = "selection.yaml"

// Selection is the last committed screen selection.
type Selection struct {
	Category    string `yaml:"category"`
	InstrumentA string `yaml:"instrument_a"`
	InstrumentB string `yaml:"instrument_b"`
}

func SelectionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "assetiq", selectionFile), nil
}

func SaveSelection(path string, sel Selection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(sel)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadSelection returns the zero Selection when path does not exist.
func LoadSelection(path string) (Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Selection{}, nil
		}
		return Selection{}, err
	}
	var sel Selection
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

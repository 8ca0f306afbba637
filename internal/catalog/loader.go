package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"glampd/pkg/types"
)

// datasetFile is the on-disk shape of one dataset.
type datasetFile struct {
	Brand    types.Brand           `yaml:"brand"`
	Market   types.Market          `yaml:"market"`
	Listings []types.ListingRecord `yaml:"listings"`
}

// LoadDir scans a directory for *.yaml/*.yml dataset files and installs each
// into src, replacing the embedded dataset for that segment. A missing
// directory is not an error; a malformed file is.
func LoadDir(src *Source, dir string) error {
	base, err := expandHome(dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		p := filepath.Join(abs, e.Name())
		if err := loadFile(src, p); err != nil {
			return fmt.Errorf("dataset %s: %w", e.Name(), err)
		}
	}
	return nil
}

func loadFile(src *Source, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var df datasetFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return err
	}
	seg, err := ParseSegment(string(df.Brand) + "/" + string(df.Market))
	if err != nil {
		return err
	}
	return src.Replace(seg, df.Listings)
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

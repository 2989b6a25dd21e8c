package questions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/qbank/pkg/errors"
)

const filePermissions = 0o644

// Load reads a question collection from a YAML or JSON file, chosen by
// extension. The on-disk representation maps one-to-one onto the Question
// fields; both a bare list and a document with a top-level "questions" key
// are accepted, since upstream exporters produce both shapes.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path, data)
	case ".json":
		return loadJSON(path, data)
	default:
		// Try YAML first (it is a superset of JSON for our purposes).
		qs, yerr := loadYAML(path, data)
		if yerr == nil {
			return qs, nil
		}
		return loadJSON(path, data)
	}
}

// document is the wrapped collection shape some exporters produce.
type document struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

func loadYAML(path string, data []byte) ([]Question, error) {
	var qs []Question
	if err := yaml.Unmarshal(data, &qs); err == nil {
		return qs, nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return doc.Questions, nil
}

func loadJSON(path string, data []byte) ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err == nil {
		return qs, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return doc.Questions, nil
}

// Save writes a question collection to a YAML or JSON file, chosen by
// extension. Unknown extensions default to YAML.
func Save(path string, qs []Question) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(qs, "", "  ")
		if err != nil {
			return errors.WrapParse("json", path, err)
		}
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(qs)
		if err != nil {
			return errors.WrapParse("yaml", path, err)
		}
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

package farmctx

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var defaultVocab []byte

// Vocabulary lists the surface forms the extractor scans for. Order matters:
// within a list the first match wins.
type Vocabulary struct {
	Soils     []string `yaml:"soils"`
	Locations []string `yaml:"locations"`
	Crops     []string `yaml:"crops"`
}

// LoadVocabulary reads the vocabulary from path, falling back to the
// built-in lists when the file does not exist.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data := defaultVocab
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read vocabulary: %w", err)
		}
	}

	v := &Vocabulary{}
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return v, nil
}

func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{}
	// The embedded file is well formed; a parse failure here is a build bug.
	if err := yaml.Unmarshal(defaultVocab, v); err != nil {
		panic(err)
	}
	return v
}

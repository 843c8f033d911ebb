package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// baseFile is the on-disk YAML layout of a knowledge base.
type baseFile struct {
	Articles []Article `yaml:"articles"`
}

// LoadFile reads a knowledge base from a YAML file.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var file baseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	base, err := NewBase(file.Articles)
	if err != nil {
		return nil, fmt.Errorf("validate knowledge base: %w", err)
	}
	return base, nil
}

// ReferenceDoc is a supporting document served alongside replies.
type ReferenceDoc struct {
	Title      string   `yaml:"title"`
	URL        string   `yaml:"url"`
	Content    string   `yaml:"content"`
	Categories []string `yaml:"categories"`
}

type referenceFile struct {
	References []ReferenceDoc `yaml:"references"`
}

// LoadReferences reads a reference corpus from a YAML file.
func LoadReferences(path string) ([]ReferenceDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference corpus: %w", err)
	}
	var file referenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse reference corpus: %w", err)
	}
	return file.References, nil
}

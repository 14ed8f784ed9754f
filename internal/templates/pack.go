package templates

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Headings are the fixed scaffolding strings a renderer may emit. Users can
// override them through a template pack; the words of the prompt itself are
// never affected.
type Headings struct {
	Task   string `yaml:"task"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Bullet string `yaml:"bullet"`
	Step   string `yaml:"step"`
}

// DefaultHeadings returns the built-in scaffolding.
func DefaultHeadings() Headings {
	return Headings{
		Task:   "Task:",
		Input:  "Input:",
		Output: "Output:",
		Bullet: "-",
		Step:   "Step",
	}
}

// LoadPack reads heading overrides from a YAML file. Unknown keys are
// rejected so a typoed override cannot silently fall back to a default.
// Empty fields keep their defaults.
func LoadPack(path string) (Headings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Headings{}, fmt.Errorf("read template pack: %w", err)
	}
	return ParsePack(data)
}

// ParsePack parses template pack YAML.
func ParsePack(data []byte) (Headings, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)

	var overrides Headings
	if err := dec.Decode(&overrides); err != nil {
		return Headings{}, fmt.Errorf("parse template pack: %w", err)
	}

	h := DefaultHeadings()
	if overrides.Task != "" {
		h.Task = overrides.Task
	}
	if overrides.Input != "" {
		h.Input = overrides.Input
	}
	if overrides.Output != "" {
		h.Output = overrides.Output
	}
	if overrides.Bullet != "" {
		h.Bullet = overrides.Bullet
	}
	if overrides.Step != "" {
		h.Step = overrides.Step
	}
	return h, nil
}

// orDefault fills zero-valued headings, used when a RenderContext was built
// without a pack.
func (h Headings) orDefault() Headings {
	if h == (Headings{}) {
		return DefaultHeadings()
	}
	return h
}

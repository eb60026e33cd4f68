package reactor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance.
var validate = validator.New()

// Spec is a declarative description of reactor parameters and inputs,
// loadable from YAML or JSON. Fields left out of a document unmarshal to
// their zero values, which are valid under the reactor invariants; a spec
// document is therefore expected to state the full parameter set.
type Spec struct {
	Conversion float64 `yaml:"conversion" json:"conversion" validate:"min=0,max=1"`
	TwoOutputs bool    `yaml:"two_outputs" json:"two_outputs"`
	SplitRatio float64 `yaml:"split_ratio" json:"split_ratio" validate:"min=0,max=1"`
	InputA     float64 `yaml:"input_a" json:"input_a" validate:"min=0"`
	InputB     float64 `yaml:"input_b" json:"input_b" validate:"min=0"`
}

// Validate checks the spec against its range constraints.
func (s Spec) Validate() error {
	return validate.Struct(s)
}

// Apply pushes the spec's parameters and inputs into r through the
// validated setters. On error the reactor may hold a partial update; the
// Controller guards against this by validating specs before applying them.
func (s Spec) Apply(r *Reactor) error {
	if err := r.SetConversion(s.Conversion); err != nil {
		return err
	}
	r.SetTwoOutputs(s.TwoOutputs)
	if err := r.SetSplitRatio(s.SplitRatio); err != nil {
		return err
	}
	return r.SetInputs(s.InputA, s.InputB)
}

// Format specifies the expected spec document format.
type Format int

const (
	// FormatAuto detects format from content (default).
	FormatAuto Format = iota
	// FormatJSON expects JSON format.
	FormatJSON
	// FormatYAML expects YAML format.
	FormatYAML
)

// unmarshalSpec parses bytes according to the specified format.
// If format is FormatAuto, it detects the format from content.
func unmarshalSpec(data []byte, s *Spec, format Format) error {
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, s); err != nil {
			return fmt.Errorf("expected JSON: %w", err)
		}
		return nil

	case FormatYAML:
		return yaml.Unmarshal(data, s)

	default: // FormatAuto
		// Trim whitespace for detection
		trimmed := bytes.TrimSpace(data)

		// Detect JSON by leading character
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return json.Unmarshal(data, s)
		}

		// Default to YAML (which also handles plain JSON)
		return yaml.Unmarshal(data, s)
	}
}

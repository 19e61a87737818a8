package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// conditionsFile is the YAML layout of an importable rule table
type conditionsFile struct {
	Conditions []*domain.Condition `yaml:"conditions"`
}

// LoadConditionsFile reads a rule table from YAML, keeping file order
func LoadConditionsFile(path string) (domain.ConditionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file conditionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(file.Conditions))
	for i, c := range file.Conditions {
		if c == nil {
			return nil, fmt.Errorf("condition %d is empty", i)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate condition id %q", c.ID)
		}
		seen[c.ID] = true
	}

	return domain.ConditionTable(file.Conditions), nil
}

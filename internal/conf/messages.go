package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
)

// MessagesConfig contains the reply texts loaded from YAML
type MessagesConfig struct {
	Preambles PreamblesConfig `yaml:"preambles"`

	// Source is the file the config was read from, empty for defaults
	Source string `yaml:"-"`
}

// PreamblesConfig contains texts prepended to the default reply
type PreamblesConfig struct {
	Welcome       string `yaml:"welcome"`
	NotUnderstood string `yaml:"not_understood"`
}

// LoadMessagesConfig loads reply texts from a YAML file.
// An empty path searches the usual locations and falls back to defaults.
func LoadMessagesConfig(configPath string) (*MessagesConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/messages.yaml",
			"/etc/wa-responder/messages.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "messages.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err == nil {
			data = content
			loadedPath = p
			break
		}
	}

	if data == nil {
		if configPath != "" {
			return nil, fmt.Errorf("failed to read %s", configPath)
		}
		return DefaultMessagesConfig(), nil
	}

	var config MessagesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", loadedPath, err)
	}
	config.Source = loadedPath

	// Fill in defaults for empty values
	config.fillDefaults()

	return &config, nil
}

func (c *MessagesConfig) fillDefaults() {
	if c.Preambles.Welcome == "" {
		c.Preambles.Welcome = usecase.DefaultPreambles.Welcome
	}
	if c.Preambles.NotUnderstood == "" {
		c.Preambles.NotUnderstood = usecase.DefaultPreambles.NotUnderstood
	}
}

// DefaultMessagesConfig returns the compiled-in reply texts
func DefaultMessagesConfig() *MessagesConfig {
	return &MessagesConfig{
		Preambles: PreamblesConfig{
			Welcome:       usecase.DefaultPreambles.Welcome,
			NotUnderstood: usecase.DefaultPreambles.NotUnderstood,
		},
	}
}

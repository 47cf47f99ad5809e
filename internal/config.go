// Module configuration
//
// The configuration is loaded from a YAML file, with the following
// structure:
//
//  calsched_config:
//    log_config:
//      ...
//    worker_pool_config:
//      ...
//    scheduler_config:
//      ...
//
// The "calsched_config" section maps to the Config structure defined in
// this package. A caller embedding this module may have its own sections
// alongside it in the same file; LoadConfig ignores them.

package calsched_internal

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	CONFIG_SECTION_NAME = "calsched_config"
)

// Config groups this module's own configuration sections.
type Config struct {
	LoggerConfig     *LoggerConfig         `yaml:"log_config"`
	WorkerPoolConfig *WorkerPoolConfig     `yaml:"worker_pool_config"`
	SchedulerConfig  *AsyncSchedulerConfig `yaml:"scheduler_config"`
}

// DefaultConfig returns a Config with every section at its own default.
func DefaultConfig() *Config {
	return &Config{
		LoggerConfig:     DefaultLoggerConfig(),
		WorkerPoolConfig: DefaultWorkerPoolConfig(),
		SchedulerConfig:  DefaultAsyncSchedulerConfig(),
	}
}

// LoadConfig loads the configuration from the specified YAML file (or
// buf, pre-populated for testing). Any section other than
// CONFIG_SECTION_NAME is ignored by this function; an embedding
// application is expected to parse its own sections separately from the
// same buffer.
func LoadConfig(cfgFile string, buf []byte) (*Config, error) {
	if buf == nil {
		f, err := os.Open(cfgFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		buf, err = io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("file: %q: %v", cfgFile, err)
		}
	}

	docNode := yaml.Node{}
	if err := yaml.Unmarshal(buf, &docNode); err != nil {
		return nil, fmt.Errorf("file: %q: %v", cfgFile, err)
	}

	cfg := DefaultConfig()
	if docNode.Kind == yaml.DocumentNode && len(docNode.Content) > 0 {
		rootNode := docNode.Content[0]
		if rootNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("file: %q: invalid YAML root node %q", cfgFile, rootNode.Tag)
		}
		matched := false
		for _, n := range rootNode.Content {
			if n.Kind == yaml.ScalarNode {
				matched = n.Value == CONFIG_SECTION_NAME
				continue
			}
			if n.Kind == yaml.MappingNode && matched {
				if err := n.Decode(cfg); err != nil {
					return nil, fmt.Errorf("file: %q: %v", cfgFile, err)
				}
			}
			matched = false
		}
	}

	return cfg, nil
}

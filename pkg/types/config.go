package types

import "time"

// HTTPConfig holds settings for fetching a collection over HTTP.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wiki-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SearchConfig holds settings for the search command.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DataFile is an optional YAML or JSON file replacing the built-in collection.
	DataFile string `json:"data_file,omitempty" yaml:"data_file,omitempty" mapstructure:"data_file"`

	// DataURL is an optional URL serving a YAML or JSON collection.
	DataURL string `json:"data_url,omitempty" yaml:"data_url,omitempty" mapstructure:"data_url"`
}

// StoreConfig holds settings for the SQLite article store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// Dataset names the set of records the store reads and writes (default "wiki").
	Dataset string `json:"dataset" yaml:"dataset" mapstructure:"dataset"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read from wiki-search.yaml.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
}

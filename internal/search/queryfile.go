// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk form of a search request and its result, so a
// search can be saved and shown again without rebuilding the indices.
type QueryFile struct {
	Query   QueryParams  `yaml:"query"`
	Result  Result       `yaml:"result"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryParams stores the request in a serializable form.
type QueryParams struct {
	Keyword string `yaml:"keyword"`
	Option  Option `yaml:"option"`
	Value   string `yaml:"value,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Source    string    `yaml:"source"`
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves req and res to a YAML file. source names the
// collection the search ran against.
func WriteQueryFile(path, source string, req Request, res Result) error {
	total := len(res.Titles)
	switch res.Option {
	case OptionInfo:
		total = len(res.Details)
	case OptionTimestamp:
		total = len(res.Timestamps)
	}

	qf := QueryFile{
		Query:  QueryParams{Keyword: req.Keyword, Option: res.Option, Value: req.Value},
		Result: res,
		Summary: QuerySummary{
			Source:    source,
			Total:     total,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRequest converts stored QueryParams back into a Request.
func (p QueryParams) ToRequest() Request {
	return Request{Keyword: p.Keyword, Option: p.Option, Value: p.Value}
}

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial configs from each source and merges them
// in the order they were added. Earlier sources win: mergo only fills fields
// still at their zero value, so env takes priority over flags, and flags over
// the JSON file.
type configBuilder struct {
	sources []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{sources: make([]*StructuredConfig, 0, 3)}
}

func (b *configBuilder) withEnv() *configBuilder {
	fromEnv := &StructuredConfig{}
	if err := parseEnv(fromEnv); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.sources = append(b.sources, fromEnv)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.sources = append(b.sources, ParseFlags())
	return b
}

// withJSON loads the JSON config file if any earlier source named one. It
// must therefore run after withEnv and withFlags.
func (b *configBuilder) withJSON() *configBuilder {
	var path string
	for _, src := range b.sources {
		if src.JSONFilePath != "" {
			path = src.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	fromFile, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.sources = append(b.sources, fromFile)
	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return merged, nil
}

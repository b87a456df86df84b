// Package config provides configuration structures for the sheet search engine.
// It defines search limits, semantic index settings and server options.
package config

import (
	"fmt"
)

const (
	DefaultPerSheetCap    = 100
	DefaultTotalCap       = 1000
	DefaultPerSheetLimit  = 5000
	DefaultTopKPerSheet   = 30
	DefaultMaxFeatures    = 200000
	DefaultPort           = "8080"
	DefaultMaxUploadBytes = 64 << 20
	DefaultJobWorkers     = 2
)

// SearchSettings contains the limits applied by keyword and semantic search.
//
// Keyword results are capped twice: first per sheet (PerSheetCap), then across
// the whole response (TotalCap) filling sheets in lexicographic name order.
// A negative TotalCap disables the global cap.
type SearchSettings struct {
	PerSheetCap          int  `json:"per_sheet_cap" mapstructure:"per_sheet_cap"`                     // Max keyword rows returned per sheet
	TotalCap             int  `json:"total_cap" mapstructure:"total_cap"`                             // Max keyword rows returned across sheets; negative means unlimited
	PerSheetLimit        int  `json:"per_sheet_limit" mapstructure:"per_sheet_limit"`                 // Leading rows per sheet fed to the semantic index
	TopKPerSheet         int  `json:"top_k_per_sheet" mapstructure:"top_k_per_sheet"`                 // Semantic hits returned per sheet
	MaxFeatures          int  `json:"max_features" mapstructure:"max_features"`                       // Vocabulary cap of each sheet's term-weighting model
	SublinearTF          bool `json:"sublinear_tf" mapstructure:"sublinear_tf"`                       // Use 1+ln(tf) instead of raw term counts
	RunSemanticByDefault bool `json:"run_semantic_by_default" mapstructure:"run_semantic_by_default"` // Semantic search when a request does not say
}

// DefaultSearchSettings returns settings with every default applied.
func DefaultSearchSettings() SearchSettings {
	s := SearchSettings{RunSemanticByDefault: true}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults replaces zero values with defaults
func (s *SearchSettings) ApplyDefaults() {
	if s.PerSheetCap == 0 {
		s.PerSheetCap = DefaultPerSheetCap
	}
	if s.TotalCap == 0 {
		s.TotalCap = DefaultTotalCap
	}
	if s.PerSheetLimit == 0 {
		s.PerSheetLimit = DefaultPerSheetLimit
	}
	if s.TopKPerSheet == 0 {
		s.TopKPerSheet = DefaultTopKPerSheet
	}
	if s.MaxFeatures == 0 {
		s.MaxFeatures = DefaultMaxFeatures
	}
}

// Validate returns a list of problems with the settings; empty means valid.
func (s *SearchSettings) Validate() []string {
	var problems []string

	if s.PerSheetCap < 0 {
		problems = append(problems, fmt.Sprintf("per_sheet_cap must not be negative (got %d)", s.PerSheetCap))
	}
	if s.PerSheetLimit < 0 {
		problems = append(problems, fmt.Sprintf("per_sheet_limit must not be negative (got %d)", s.PerSheetLimit))
	}
	if s.TopKPerSheet < 0 {
		problems = append(problems, fmt.Sprintf("top_k_per_sheet must not be negative (got %d)", s.TopKPerSheet))
	}
	if s.MaxFeatures < 0 {
		problems = append(problems, fmt.Sprintf("max_features must not be negative (got %d)", s.MaxFeatures))
	}

	return problems
}

// ServerConfig holds the options of the HTTP server.
type ServerConfig struct {
	Port           string         `json:"port" mapstructure:"port"`
	MaxUploadBytes int64          `json:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	JobWorkers     int            `json:"job_workers" mapstructure:"job_workers"`
	Search         SearchSettings `json:"search" mapstructure:"search"`
}

// ApplyDefaults fills zero values of the server options and the nested search settings.
func (c *ServerConfig) ApplyDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.JobWorkers <= 0 {
		c.JobWorkers = DefaultJobWorkers
	}
	c.Search.ApplyDefaults()
}

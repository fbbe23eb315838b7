package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath   string // model document (.yml) or a directory holding one
	DatasetPath string // dataset document (.yml) or a directory holding one

	LogFormat string
	LogLevel  string

	// PartitionProbe is the size of the index domain over which partition
	// disjointness is checked.
	PartitionProbe int64

	// VerifyTruth additionally opens the dataset's SQLite store and checks
	// that the truth table actually serves every required column.
	VerifyTruth bool
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.DatasetPath == "" {
		return nil, errors.New("DatasetPath is a required configuration field and cannot be empty")
	}
	if cfg.PartitionProbe <= 0 {
		cfg.PartitionProbe = 1000
	}
	return &cfg, nil
}

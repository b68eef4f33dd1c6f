package consolidate

import "errors"

var (
	// ErrInputDir is returned when the input directory cannot be read.
	ErrInputDir = errors.New("input directory not accessible")

	// ErrNoArtifacts is returned when the input directory contains no
	// markdown artifacts.
	ErrNoArtifacts = errors.New("no markdown artifacts found")
)

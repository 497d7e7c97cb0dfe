// Copyright 2025 ramometer Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"errors"
	"fmt"
	"math/bits"
)

// RepetitionThreshold maps buffers up to Limit bytes to a per-call
// operator repetition count.
type RepetitionThreshold struct {
	Limit       uint64 `json:"limit"`
	Inclusive   bool   `json:"inclusive"` // size <= Limit when true, size < Limit otherwise
	Repetitions int    `json:"repetitions"`
}

// Matches reports whether a buffer of size bytes falls into the bucket.
func (t RepetitionThreshold) Matches(size uint64) bool {
	if t.Inclusive {
		return size <= t.Limit
	}
	return size < t.Limit
}

// Config holds every constant embedded into the generated program.
type Config struct {
	// Alignment of both benchmark buffers in bytes; a power of two.
	Alignment uint64
	// BufferSizes is the swept buffer size list in bytes.
	BufferSizes []uint64
	// TestRepetitions is how often each wrapper runs per loop width.
	TestRepetitions int
	// Thresholds are checked in order; the first match wins.
	Thresholds []RepetitionThreshold
	// DefaultRepetitions applies when no threshold matches.
	DefaultRepetitions int
	// ResultsFile receives the measurement records.
	ResultsFile string
	// Seed for the dummy-index random source; 0 seeds from time( NULL ).
	Seed int64
}

// DefaultConfig returns the standard sweep: 16 KiB .. 8 GiB, 128 byte
// alignment, 30 test repetitions.
func DefaultConfig() Config {
	return Config{
		Alignment: 128,
		BufferSizes: []uint64{
			16 * KiB, 32 * KiB, 512 * KiB,
			1 * MiB, 4 * MiB, 8 * MiB, 16 * MiB, 32 * MiB, 128 * MiB,
			1 * GiB, 4 * GiB, 8 * GiB,
		},
		TestRepetitions: 30,
		Thresholds: []RepetitionThreshold{
			{Limit: 1 * MiB, Inclusive: true, Repetitions: 100000},
			{Limit: 16 * MiB, Inclusive: true, Repetitions: 1000},
			{Limit: 1 * GiB, Inclusive: false, Repetitions: 100},
		},
		DefaultRepetitions: 10,
		ResultsFile:        "results.csv",
	}
}

// OperatorRepetitions returns the per-call repetition count for a buffer of
// size bytes.
func (c Config) OperatorRepetitions(size uint64) int {
	for _, t := range c.Thresholds {
		if t.Matches(size) {
			return t.Repetitions
		}
	}
	return c.DefaultRepetitions
}

// Validate checks the configuration for values the generated program
// cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Alignment == 0 || bits.OnesCount64(c.Alignment) != 1 {
		errs = append(errs, fmt.Errorf("alignment %d is not a power of two", c.Alignment))
	}
	if len(c.BufferSizes) == 0 {
		errs = append(errs, errors.New("no buffer sizes"))
	}
	for _, s := range c.BufferSizes {
		if s == 0 {
			errs = append(errs, errors.New("buffer size 0"))
		}
	}
	if c.TestRepetitions <= 0 {
		errs = append(errs, fmt.Errorf("test repetitions %d must be positive", c.TestRepetitions))
	}
	if c.DefaultRepetitions <= 0 {
		errs = append(errs, fmt.Errorf("default repetitions %d must be positive", c.DefaultRepetitions))
	}
	for _, t := range c.Thresholds {
		if t.Repetitions <= 0 {
			errs = append(errs, fmt.Errorf("threshold %s: repetitions %d must be positive", FormatSize(t.Limit), t.Repetitions))
		}
	}
	if c.ResultsFile == "" {
		errs = append(errs, errors.New("empty results file name"))
	}
	return errors.Join(errs...)
}

// ValidateFor is Validate plus a check that every buffer holds at least one
// element of elemBytes bytes. Smaller buffers would make the generated
// driver draw indices modulo a zero length.
func (c Config) ValidateFor(elemBytes uint64) error {
	errs := []error{c.Validate()}
	for _, s := range c.BufferSizes {
		if s != 0 && s < elemBytes {
			errs = append(errs, fmt.Errorf("buffer size %s is smaller than one %d byte element", FormatSize(s), elemBytes))
		}
	}
	return errors.Join(errs...)
}

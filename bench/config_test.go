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
	"testing"
)

func TestOperatorRepetitions(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		size uint64
		want int
	}{
		{"16KB", 16 * KiB, 100000},
		{"exactly 1MB", 1 * MiB, 100000},
		{"just above 1MB", 1*MiB + 1, 1000},
		{"exactly 16MB", 16 * MiB, 1000},
		{"128MB", 128 * MiB, 100},
		{"just below 1GB", 1*GiB - 1, 100},
		{"exactly 1GB", 1 * GiB, 10},
		{"8GB", 8 * GiB, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.OperatorRepetitions(tt.size); got != tt.want {
				t.Errorf("OperatorRepetitions(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero alignment", func(c *Config) { c.Alignment = 0 }, true},
		{"alignment not a power of two", func(c *Config) { c.Alignment = 96 }, true},
		{"no sizes", func(c *Config) { c.BufferSizes = nil }, true},
		{"zero size", func(c *Config) { c.BufferSizes = []uint64{0} }, true},
		{"no test repetitions", func(c *Config) { c.TestRepetitions = 0 }, true},
		{"no default repetitions", func(c *Config) { c.DefaultRepetitions = -1 }, true},
		{"bad threshold", func(c *Config) { c.Thresholds[0].Repetitions = 0 }, true},
		{"no results file", func(c *Config) { c.ResultsFile = "" }, true},
		{"size below one element", func(c *Config) { c.BufferSizes = []uint64{16 * KiB, 4} }, true},
		{"size of exactly one element", func(c *Config) { c.BufferSizes = []uint64{8} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.ValidateFor(8); (err != nil) != tt.wantErr {
				t.Errorf("ValidateFor(8) = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "4096", want: 4096},
		{in: "16KB", want: 16384},
		{in: "16kb", want: 16384},
		{in: "512KiB", want: 512 * 1024},
		{in: "4mi", want: 4 * 1024 * 1024},
		{in: "1GB", want: 1 << 30},
		{in: "2k", want: 2000},
		{in: "3M", want: 3000000},
		{in: "1g", want: 1000000000},
		{in: " 8 GB ", want: 8 << 30},
		{in: "100B", want: 100},
		{in: "", wantErr: true},
		{in: "KB", wantErr: true},
		{in: "-1KB", wantErr: true},
		{in: "1.5MB", wantErr: true},
		{in: "1TB", wantErr: true},
		{in: "99999999999999999999GB", wantErr: true},
		{in: "17179869184GB", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSizeNames(t *testing.T) {
	tests := []struct {
		n      uint64
		format string
		macro  string
	}{
		{16 * KiB, "16KB", "KB16"},
		{512 * KiB, "512KB", "KB512"},
		{1 * MiB, "1MB", "MB1"},
		{128 * MiB, "128MB", "MB128"},
		{8 * GiB, "8GB", "GB8"},
		{1536, "1536B", "B1536"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.format {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.format)
		}
		if got := SizeMacro(tt.n); got != tt.macro {
			t.Errorf("SizeMacro(%d) = %q, want %q", tt.n, got, tt.macro)
		}
		back, err := ParseSize(FormatSize(tt.n))
		if err != nil || back != tt.n {
			t.Errorf("ParseSize(FormatSize(%d)) = %d, %v", tt.n, back, err)
		}
	}
}

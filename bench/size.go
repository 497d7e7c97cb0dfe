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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binary size units.
const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
)

// sizeSuffixes is checked longest first. "k/m/g" are decimal; every other
// spelling, including "KB", is binary.
var sizeSuffixes = []struct {
	suffix string
	factor uint64
}{
	{"kib", KiB}, {"mib", MiB}, {"gib", GiB},
	{"kb", KiB}, {"mb", MiB}, {"gb", GiB},
	{"ki", KiB}, {"mi", MiB}, {"gi", GiB},
	{"k", 1000}, {"m", 1000 * 1000}, {"g", 1000 * 1000 * 1000},
	{"b", 1},
}

// ParseSize parses a byte count such as "16KB", "512ki", "1g" or "4096".
func ParseSize(s string) (uint64, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("empty size")
	}
	if strings.HasPrefix(in, "-") {
		return 0, fmt.Errorf("negative size %q", s)
	}
	factor := uint64(1)
	for _, sf := range sizeSuffixes {
		if num, ok := strings.CutSuffix(in, sf.suffix); ok {
			in, factor = num, sf.factor
			break
		}
	}
	n, err := strconv.ParseUint(strings.TrimSpace(in), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > math.MaxUint64/factor {
		return 0, fmt.Errorf("size %q overflows 64 bits", s)
	}
	return n * factor, nil
}

// ParseSizes parses every element of list.
func ParseSizes(list []string) ([]uint64, error) {
	sizes := make([]uint64, 0, len(list))
	for _, s := range list {
		n, err := ParseSize(s)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// FormatSize renders n with the largest binary unit dividing it, e.g.
// "16KB", "1GB", "100B".
func FormatSize(n uint64) string {
	switch {
	case n != 0 && n%GiB == 0:
		return fmt.Sprintf("%dGB", n/GiB)
	case n != 0 && n%MiB == 0:
		return fmt.Sprintf("%dMB", n/MiB)
	case n != 0 && n%KiB == 0:
		return fmt.Sprintf("%dKB", n/KiB)
	}
	return fmt.Sprintf("%dB", n)
}

// SizeMacro returns the preprocessor name used for n in the generated
// program, e.g. "KB16", "GB1".
func SizeMacro(n uint64) string {
	f := FormatSize(n)
	i := strings.IndexFunc(f, func(r rune) bool { return r < '0' || r > '9' })
	return f[i:] + f[:i]
}

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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
	"github.com/samber/lo"
)

// Names of the non-unit files of a generated tree.
const (
	MakefileName = "Makefile"
	ManifestName = "manifest.json"
	ProgramName  = "ramometer"
)

// RenderMakefile renders a Makefile building every definition file of
// units into one executable with the toolchain of p.
func RenderMakefile(p *profile.Profile, units []*cgen.Unit) []byte {
	sources := lo.FilterMap(units, func(u *cgen.Unit, _ int) (string, bool) {
		return u.DefinitionPath(), u.DefinitionPath() != ""
	})
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Code generated by ramgen for target %s. DO NOT EDIT.\n\n", p.Name)
	fmt.Fprintf(&buf, "CXX ?= %s\n", p.Compiler)
	fmt.Fprintf(&buf, "CXXFLAGS ?= %s\n", strings.Join(p.CompilerFlags, " "))
	fmt.Fprintf(&buf, "CPPFLAGS += -I.\n\n")
	fmt.Fprintf(&buf, "PROGRAM := %s\n", ProgramName)
	fmt.Fprintf(&buf, "SOURCES := \\\n")
	for i, s := range sources {
		if i < len(sources)-1 {
			fmt.Fprintf(&buf, "\t%s \\\n", s)
		} else {
			fmt.Fprintf(&buf, "\t%s\n", s)
		}
	}
	fmt.Fprintf(&buf, "OBJECTS := $(SOURCES:.cpp=.o)\n\n")
	fmt.Fprintf(&buf, ".PHONY: all run clean\n\n")
	fmt.Fprintf(&buf, "all: $(PROGRAM)\n\n")
	fmt.Fprintf(&buf, "$(PROGRAM): $(OBJECTS)\n\t$(CXX) $(CXXFLAGS) -o $@ $^\n\n")
	fmt.Fprintf(&buf, "%%.o: %%.cpp\n\t$(CXX) $(CPPFLAGS) $(CXXFLAGS) -c -o $@ $<\n\n")
	fmt.Fprintf(&buf, "run: $(PROGRAM)\n\t./$(PROGRAM)\n\n")
	fmt.Fprintf(&buf, "clean:\n\trm -f $(PROGRAM) $(OBJECTS)\n")
	return buf.Bytes()
}

// Manifest describes a generated tree.
type Manifest struct {
	Target          string                `json:"target"`
	Compiler        string                `json:"compiler"`
	CompilerFlags   []string              `json:"compiler_flags"`
	ClockHz         uint64                `json:"clock_hz"`
	Variants        []int                 `json:"variants"`
	Alignment       uint64                `json:"alignment"`
	BufferSizes     []uint64              `json:"buffer_sizes"`
	TestRepetitions int                   `json:"test_repetitions"`
	Thresholds      []RepetitionThreshold `json:"thresholds"`
	DefaultReps     int                   `json:"default_operator_repetitions"`
	Seed            int64                 `json:"seed"`
	ResultsFile     string                `json:"results_file"`
	RecordFields    []string              `json:"record_fields"`
	Units           []ManifestUnit        `json:"units"`
}

// ManifestUnit is one emitted compilation unit.
type ManifestUnit struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Files   []string `json:"files"`
	Methods []string `json:"methods"`
}

// NewManifest describes units generated for p, variants and cfg.
func NewManifest(p *profile.Profile, variants []profile.Variant, cfg Config, units []*cgen.Unit) Manifest {
	return Manifest{
		Target:          p.Name,
		Compiler:        p.Compiler,
		CompilerFlags:   p.CompilerFlags,
		ClockHz:         p.ClockHz,
		Variants:        lo.Map(variants, func(v profile.Variant, _ int) int { return v.DataWidth }),
		Alignment:       cfg.Alignment,
		BufferSizes:     cfg.BufferSizes,
		TestRepetitions: cfg.TestRepetitions,
		Thresholds:      cfg.Thresholds,
		DefaultReps:     cfg.DefaultRepetitions,
		Seed:            cfg.Seed,
		ResultsFile:     cfg.ResultsFile,
		RecordFields:    RecordFields,
		Units: lo.Map(units, func(u *cgen.Unit, _ int) ManifestUnit {
			return ManifestUnit{
				Name:    u.Name,
				Kind:    u.Kind.String(),
				Files:   u.Files(),
				Methods: lo.Map(u.Methods, func(m cgen.Method, _ int) string { return m.Name() }),
			}
		}),
	}
}

// Marshal renders m as indented JSON with a trailing newline.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

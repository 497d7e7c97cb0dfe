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

package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Profile is the capability table entry for one compilation target: the
// loop annotations kernels are decorated with, the clock primitive used by
// the timing harness, and the toolchain the generated tree is built with.
// An empty annotation means the target has no equivalent and the line is
// omitted.
type Profile struct {
	Name        string // "ve", "gcc", "clang"
	Description string

	// VectorRegister is a format string taking the array name, e.g.
	// "#pragma _NEC vreg( %s )", placed before a lane array is initialized.
	VectorRegister string
	// NoOuterUnroll precedes the blocked outer loop.
	NoOuterUnroll string
	// ShortLoop precedes the inner loop of a block.
	ShortLoop string
	// PackedVector precedes every loop of an Annotated variant.
	PackedVector string

	// ClockHeaders are system headers the clock body needs.
	ClockHeaders []string
	// ClockBody is the body of "uint64_t get_user_clock( )".
	ClockBody []string
	// ClockHz converts clock ticks to seconds.
	ClockHz uint64

	Compiler      string   // "nc++", "g++"
	CompilerFlags []string // "-O3", ...
}

// VectorRegisterFor renders the vector-register annotation for array, or ""
// if the target has none.
func (p *Profile) VectorRegisterFor(array string) string {
	if p.VectorRegister == "" {
		return ""
	}
	return fmt.Sprintf(p.VectorRegister, array)
}

// PackedVectorFor returns the packed-vector annotation when v asks for it.
func (p *Profile) PackedVectorFor(v Variant) string {
	if !v.Annotated {
		return ""
	}
	return p.PackedVector
}

// WithClockHz returns a copy using a different clock frequency.
func (p *Profile) WithClockHz(hz uint64) *Profile {
	c := *p
	c.ClockHeaders = slices.Clone(p.ClockHeaders)
	c.ClockBody = slices.Clone(p.ClockBody)
	c.CompilerFlags = slices.Clone(p.CompilerFlags)
	c.ClockHz = hz
	return &c
}

// WithExtraFlags returns a copy with flags appended to CompilerFlags.
func (p *Profile) WithExtraFlags(flags ...string) *Profile {
	c := p.WithClockHz(p.ClockHz)
	c.CompilerFlags = append(c.CompilerFlags, flags...)
	return c
}

// HostName is the pseudo target resolved through CPU feature detection.
const HostName = "host"

// registry holds every known profile keyed by name.
var registry map[string]*Profile

func init() {
	registry = make(map[string]*Profile)
	for _, p := range []*Profile{
		veProfile(),
		gccProfile(),
		clangProfile(),
	} {
		registry[p.Name] = p
	}
}

// Get returns the profile registered under name. "host" resolves to the
// profile matching the machine running the generator.
func Get(name string) (*Profile, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == HostName {
		return Host(), nil
	}
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists the registered profiles plus "host", sorted.
func Names() []string {
	names := append(lo.Keys(registry), HostName)
	slices.Sort(names)
	return names
}

// Profiles returns every registered profile sorted by name.
func Profiles() []*Profile {
	ps := lo.Values(registry)
	slices.SortFunc(ps, func(a, b *Profile) int { return strings.Compare(a.Name, b.Name) })
	return ps
}

// ---------------------------------------------------------------------------
// NEC SX-Aurora Vector Engine
// ---------------------------------------------------------------------------

func veProfile() *Profile {
	return &Profile{
		Name:           "ve",
		Description:    "NEC SX-Aurora TSUBASA vector engine (ncc)",
		VectorRegister: "#pragma _NEC vreg( %s )",
		NoOuterUnroll:  "#pragma _NEC noouterloop_unroll",
		ShortLoop:      "#pragma _NEC shortloop",
		PackedVector:   "#pragma _NEC packed_vector",
		// The user clock counter is read into the return register.
		ClockBody: []string{
			`asm( "smir %s0, %usrcc" );`,
		},
		ClockHz:       1400 * 1000 * 1000,
		Compiler:      "nc++",
		CompilerFlags: []string{"-O3", "-std=c++14", "-fdiag-vector=2"},
	}
}

// ---------------------------------------------------------------------------
// GCC / Clang on general purpose CPUs
// ---------------------------------------------------------------------------

var steadyClockBody = []string{
	"return static_cast< uint64_t >(",
	"   std::chrono::duration_cast< std::chrono::nanoseconds >(",
	"      std::chrono::steady_clock::now( ).time_since_epoch( ) ).count( ) );",
}

func gccProfile() *Profile {
	return &Profile{
		Name:          "gcc",
		Description:   "GCC auto-vectorizer, steady_clock timing",
		NoOuterUnroll: "#pragma GCC unroll 1",
		ShortLoop:     "#pragma GCC ivdep",
		ClockHeaders:  []string{"chrono"},
		ClockBody:     slices.Clone(steadyClockBody),
		ClockHz:       1000 * 1000 * 1000,
		Compiler:      "g++",
		CompilerFlags: []string{"-O3", "-std=c++14"},
	}
}

func clangProfile() *Profile {
	return &Profile{
		Name:          "clang",
		Description:   "Clang loop vectorizer, steady_clock timing",
		NoOuterUnroll: "#pragma clang loop unroll(disable)",
		ShortLoop:     "#pragma clang loop vectorize(enable)",
		ClockHeaders:  []string{"chrono"},
		ClockBody:     slices.Clone(steadyClockBody),
		ClockHz:       1000 * 1000 * 1000,
		Compiler:      "clang++",
		CompilerFlags: []string{"-O3", "-std=c++14"},
	}
}

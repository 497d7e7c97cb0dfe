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
	"runtime"

	"golang.org/x/sys/cpu"
)

// HostFeatures is the subset of CPU features that changes how the generated
// tree is compiled on the generating machine.
type HostFeatures struct {
	Arch     string
	AVX2     bool
	AVX512F  bool
	AVX512BW bool
	ASIMD    bool
	SVE      bool
	SVE2     bool
}

// DetectHost reads the CPU features of the running machine.
func DetectHost() HostFeatures {
	return HostFeatures{
		Arch:     runtime.GOARCH,
		AVX2:     cpu.X86.HasAVX2,
		AVX512F:  cpu.X86.HasAVX512F,
		AVX512BW: cpu.X86.HasAVX512BW,
		ASIMD:    cpu.ARM64.HasASIMD,
		SVE:      cpu.ARM64.HasSVE,
		SVE2:     cpu.ARM64.HasSVE2,
	}
}

// ISAFlags returns the compiler flags enabling the widest vector ISA the
// features allow.
func (f HostFeatures) ISAFlags() []string {
	switch f.Arch {
	case "amd64":
		switch {
		case f.AVX512F && f.AVX512BW:
			return []string{"-mavx512f", "-mavx512bw"}
		case f.AVX512F:
			return []string{"-mavx512f"}
		case f.AVX2:
			return []string{"-mavx2"}
		}
	case "arm64":
		switch {
		case f.SVE2:
			return []string{"-march=armv9-a+sve2"}
		case f.SVE:
			return []string{"-march=armv8.2-a+sve"}
		case f.ASIMD:
			return []string{"-march=armv8-a+simd"}
		}
	}
	return nil
}

// ForHost returns the gcc profile extended with the ISA flags of f.
func ForHost(f HostFeatures) *Profile {
	p := registry["gcc"].WithExtraFlags(f.ISAFlags()...)
	p.Name = HostName
	p.Description = "gcc tuned for the generating machine (" + f.Arch + ")"
	return p
}

// Host returns the profile for the machine running the generator.
func Host() *Profile {
	return ForHost(DetectHost())
}

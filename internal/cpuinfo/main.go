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

// Package main prints the CPU features detected by Go and the benchmark
// profile the "host" target resolves to on this machine.
package main

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/ramometer/profile"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Printf("Cache line pad: %d bytes\n", unsafe.Sizeof(cpu.CacheLinePad{}))
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}

	fmt.Println()
	f := profile.DetectHost()
	p := profile.ForHost(f)
	fmt.Printf("host target: %s\n", p.Description)
	fmt.Printf("  compiler:  %s %s\n", p.Compiler, strings.Join(p.CompilerFlags, " "))
	fmt.Printf("  ISA flags: %v\n", f.ISAFlags())
	fmt.Printf("  clock:     %d Hz\n", p.ClockHz)
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasSVE:     %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:    %v (SVE2)\n", cpu.ARM64.HasSVE2)
	fmt.Printf("  HasATOMICS: %v (Large System Extensions)\n", cpu.ARM64.HasATOMICS)
	fmt.Printf("  HasDCPOP:   %v (cache line clean to persistence)\n", cpu.ARM64.HasDCPOP)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasAVX:      %v\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:     %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512BW: %v\n", cpu.X86.HasAVX512BW)
	fmt.Printf("  HasERMS:     %v (enhanced rep movsb)\n", cpu.X86.HasERMS)
	fmt.Printf("  HasSSE2:     %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasSSE42:    %v\n", cpu.X86.HasSSE42)
}

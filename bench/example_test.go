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

package bench_test

import (
	"fmt"

	"github.com/ajroetker/ramometer/bench"
	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
)

func ExampleGenerator() {
	p, err := profile.Get("gcc")
	if err != nil {
		panic(err)
	}
	cfg := bench.DefaultConfig()
	cfg.BufferSizes = []uint64{16 * bench.KiB}

	g := &bench.Generator{Profile: p, Variants: profile.EnabledVariants(), Config: cfg}
	sink := cgen.NewArchiveSink(nil)
	if err := g.Run(sink); err != nil {
		panic(err)
	}
	for _, u := range g.Units() {
		fmt.Printf("%-18s %-13s %d\n", u.Name, u.Kind, len(u.Methods))
	}
	// Output:
	// utils              header-only   2
	// read_64bit         normal        256
	// test_read_64bit    normal        256
	// copy_64bit         normal        256
	// test_copy_64bit    normal        256
	// write_64bit        normal        256
	// test_write_64bit   normal        256
	// measurement_64bit  normal        1
	// main               program-entry 1
}

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

// Package bench generates the memory bandwidth benchmark: read, copy and
// write kernels for every loop width of a variant, a timing wrapper per
// kernel, one measurement sweep per variant and the program entry point.
//
// A Generator writes the tree through a cgen.Sink:
//
//	include/utils.hpp             clock helpers (header only)
//	include/read_64bit.hpp        kernel declarations
//	read_64bit.cpp                kernel definitions
//	test_read_64bit.cpp           timing wrappers
//	measurement_64bit.cpp         sweep over loop widths
//	main.cpp                      buffer sizes, allocation, results file
//	Makefile, manifest.json
//
// Each timed call prints one record to the results file:
//
//	Read;64;4;2048;100000;0.0213;2.13e-07
package bench

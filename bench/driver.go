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
	"strconv"
	"strings"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
	"github.com/samber/lo"
)

// MainName is the program entry unit.
const MainName = "main"

// MainHeaders are the system headers of the program entry unit.
var MainHeaders = []string{
	"cstddef",
	"cstdint",
	"cstdlib",
	"ctime",
	"vector",
	"iostream",
	"fstream",
	"string",
}

// MainDefines returns the alignment constants followed by one macro per
// buffer size and threshold limit, e.g. "KB16 16384ull".
func MainDefines(cfg Config) []cgen.Define {
	defines := []cgen.Define{
		{Name: "ALIGNMENT", Value: strconv.FormatUint(cfg.Alignment, 10)},
		{Name: "ALIGNMENT_MINUS_ONE", Value: "( ALIGNMENT - 1 )"},
		{Name: "ALIGNMENT_TWOS_COMPLEMENT", Value: "( -ALIGNMENT )"},
	}
	limits := lo.Map(cfg.Thresholds, func(t RepetitionThreshold, _ int) uint64 { return t.Limit })
	for _, size := range lo.Uniq(append(append([]uint64(nil), cfg.BufferSizes...), limits...)) {
		defines = append(defines, cgen.Define{
			Name:  SizeMacro(size),
			Value: strconv.FormatUint(size, 10) + "ull",
		})
	}
	return defines
}

// repetitionChain renders the threshold table as an if / else chain
// assigning operator_repetitions.
func repetitionChain(cfg Config) cgen.Implementation {
	im := cgen.NewImplementation()
	assign := func(n int) string { return "operator_repetitions = " + strconv.Itoa(n) + ";" }
	if len(cfg.Thresholds) == 0 {
		return im.Code(assign(cfg.DefaultRepetitions))
	}
	for i, t := range cfg.Thresholds {
		op := "<"
		if t.Inclusive {
			op = "<="
		}
		head := "if"
		if i > 0 {
			head = "else if"
		}
		im = im.
			Open(fmt.Sprintf("%s( buffer_size %s %s ) {", head, op, SizeMacro(t.Limit))).
			Code(assign(t.Repetitions)).
			Close()
	}
	return im.
		Open("else {").
		Code(assign(cfg.DefaultRepetitions)).
		Close()
}

// alignedBuffer allocates one raw buffer and derives its aligned pointer.
// On allocation failure the raw buffers in held are freed and std::cout is
// restored before main returns.
func alignedBuffer(v profile.Variant, name string, held ...string) cgen.Implementation {
	raw := name + "_orig"
	fail := cgen.NewImplementation().
		Open("if( " + raw + " == NULL ) {").
		Code(`std::cerr << "Could not allocate " << buffer_size << " Byte.\n";`)
	for _, h := range held {
		fail = fail.Code("free( " + h + " );")
	}
	fail = fail.
		Code("std::cout.rdbuf( cout_buffer );").
		Code("return 1;").
		Close()
	return cgen.NewImplementation().
		Code("void * " + raw + " = malloc( buffer_size + ALIGNMENT_MINUS_ONE );").
		Combine(fail).
		Code(v.ConstPointer() + " " + name + " = reinterpret_cast< " + v.Pointer() + " >(").
		Code(cgen.Indent + "( reinterpret_cast< size_t >( " + raw + " ) + ALIGNMENT_MINUS_ONE ) & ALIGNMENT_TWOS_COMPLEMENT );")
}

// NewEntryPoint builds "int main( )": results redirection, then for each
// variant and buffer size an aligned allocation and one measurement sweep.
func NewEntryPoint(cfg Config, variants []profile.Variant) (cgen.Method, error) {
	sig, err := cgen.NewSignature("int", MainName)
	if err != nil {
		return cgen.Method{}, err
	}
	sizes := strings.Join(lo.Map(cfg.BufferSizes, func(s uint64, _ int) string { return SizeMacro(s) }), ", ")
	body := cgen.NewImplementation().
		Code(`std::ofstream out( "` + cfg.ResultsFile + `" );`).
		Code("std::streambuf * cout_buffer = std::cout.rdbuf( out.rdbuf( ) );").
		Code("std::vector< uint64_t > buffer_size_bytes{ " + sizes + " };").
		Code("size_t const test_repetitions = " + strconv.Itoa(cfg.TestRepetitions) + ";")
	for _, v := range variants {
		body = body.
			Open("for( uint64_t buffer_size : buffer_size_bytes ) {").
			Combine(alignedBuffer(v, "in").Shift(1)).
			Combine(alignedBuffer(v, "out", "in_orig").Shift(1)).
			Code("size_t operator_repetitions;").
			Combine(repetitionChain(cfg).Shift(1)).
			Code(`std::cerr << "Processing " << buffer_size << " Byte. ";`).
			Code(MeasurementName(v) + "( in, out, buffer_size / sizeof( " + v.DataType() + " ), test_repetitions, operator_repetitions );").
			Code("free( out_orig );").
			Code("free( in_orig );").
			Close()
	}
	body = body.
		Code("std::cout.rdbuf( cout_buffer );").
		Code("return 0;")
	return cgen.NewMethod(sig, body), nil
}

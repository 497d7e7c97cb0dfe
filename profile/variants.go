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
	"strconv"

	"github.com/samber/lo"
)

// Variant describes one data-width configuration of the benchmark.
type Variant struct {
	DataWidth           int    // element width in bits: 32 or 64
	Lanes               int    // vector register width in elements
	Annotated           bool   // emit the target's packed-vector annotation
	Suffix              string // "_64bit"
	LoopWidthUpperBound int    // exclusive; always Lanes+1
	Enabled             bool   // part of the default generation set
}

func newVariant(dataWidth, lanes int, annotated, enabled bool) Variant {
	return Variant{
		DataWidth:           dataWidth,
		Lanes:               lanes,
		Annotated:           annotated,
		Suffix:              "_" + strconv.Itoa(dataWidth) + "bit",
		LoopWidthUpperBound: lanes + 1,
		Enabled:             enabled,
	}
}

// variants is the descriptor table. Lane counts match a 16 KiB vector
// register file row: 256 x 64-bit or 512 packed 32-bit elements.
var variants = []Variant{
	newVariant(32, 512, true, false),
	newVariant(64, 256, false, true),
}

// Variants returns every known variant.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// EnabledVariants returns the variants generated by default.
func EnabledVariants() []Variant {
	return lo.Filter(variants, func(v Variant, _ int) bool { return v.Enabled })
}

// VariantByWidth looks a variant up by element width in bits.
func VariantByWidth(width int) (Variant, error) {
	v, ok := lo.Find(variants, func(v Variant) bool { return v.DataWidth == width })
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant width %d (want one of %v)", width, Widths())
	}
	return v, nil
}

// Widths lists the known element widths.
func Widths() []int {
	return lo.Map(variants, func(v Variant, _ int) int { return v.DataWidth })
}

// LoopWidths returns 1 .. Lanes inclusive.
func (v Variant) LoopWidths() []int {
	return lo.RangeFrom(1, v.LoopWidthUpperBound-1)
}

// BitWidth returns the data width as a string, as written in records.
func (v Variant) BitWidth() string { return strconv.Itoa(v.DataWidth) }

// ElementBytes is the size of one element in bytes.
func (v Variant) ElementBytes() uint64 { return uint64(v.DataWidth / 8) }

// DataType returns the C++ element type, e.g. "uint64_t".
func (v Variant) DataType() string { return fmt.Sprintf("uint%d_t", v.DataWidth) }

// ConstType returns "uint64_t const".
func (v Variant) ConstType() string { return v.DataType() + " const" }

// ConstPointerToConst returns "uint64_t const * const".
func (v Variant) ConstPointerToConst() string { return v.DataType() + " const * const" }

// ConstPointer returns "uint64_t * const".
func (v Variant) ConstPointer() string { return v.DataType() + " * const" }

// Pointer returns "uint64_t *".
func (v Variant) Pointer() string { return v.DataType() + " *" }

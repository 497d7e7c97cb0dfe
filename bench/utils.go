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
	"strconv"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
)

// UtilsName is the header-only unit carrying the clock helpers.
const UtilsName = "utils"

// NewUtilsUnit builds the clock helpers for p:
//
//	uint64_t get_user_clock( )
//	double get_user_time_s( uint64_t const p_start, uint64_t const p_end )
func NewUtilsUnit(p *profile.Profile) (*cgen.Unit, error) {
	u := cgen.NewUnit(UtilsName, cgen.HeaderOnly,
		append([]string{"cstdint", "cstddef"}, p.ClockHeaders...), nil)

	clockSig, err := cgen.NewSignature("uint64_t", "get_user_clock")
	if err != nil {
		return nil, err
	}
	clock := cgen.NewImplementation()
	for _, l := range p.ClockBody {
		clock = clock.Code(l)
	}
	u.AddMethod(cgen.NewMethod(clockSig, clock))

	timeSig, err := cgen.NewSignature("double", "get_user_time_s",
		cgen.Parameter{Type: "uint64_t const", Name: "p_start"},
		cgen.Parameter{Type: "uint64_t const", Name: "p_end"},
	)
	if err != nil {
		return nil, err
	}
	hz := strconv.FormatUint(p.ClockHz, 10) + "ull"
	seconds := cgen.NewImplementation().
		Code("return ( ( double ) ( p_end - p_start ) ) / ( ( double ) " + hz + " );")
	u.AddMethod(cgen.NewMethod(timeSig, seconds))
	return u, nil
}

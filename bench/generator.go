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
	"errors"
	"fmt"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
	"github.com/samber/lo"
	"k8s.io/klog/v2"
)

// Role classifies a produced unit.
type Role int

const (
	RoleUtils Role = iota
	RoleKernel
	RoleTest
	RoleMeasurement
	RoleMain
)

func (r Role) String() string {
	switch r {
	case RoleUtils:
		return "utils"
	case RoleKernel:
		return "kernel"
	case RoleTest:
		return "test"
	case RoleMeasurement:
		return "measurement"
	case RoleMain:
		return "main"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Produced is one entry of the generator's append-only unit list.
type Produced struct {
	Unit      *cgen.Unit
	Role      Role
	DataWidth int // 0 for units shared by every variant
}

// Generator expands the variant table into a complete benchmark tree.
type Generator struct {
	Profile  *profile.Profile  // compilation target
	Variants []profile.Variant // variants to generate, in order
	Config   Config

	emitter  *cgen.Emitter
	produced []Produced
	// wrappers[dataWidth][operator] holds test wrappers by loop width - 1.
	wrappers map[int]map[string][]cgen.Method
}

// Produced returns the units emitted by the last Run, in emission order.
func (g *Generator) Produced() []Produced {
	return append([]Produced(nil), g.produced...)
}

// Units returns the emitted units in emission order.
func (g *Generator) Units() []*cgen.Unit {
	return lo.Map(g.produced, func(p Produced, _ int) *cgen.Unit { return p.Unit })
}

// UnitNames returns the names of units with the given role and data width.
func (g *Generator) UnitNames(role Role, dataWidth int) []string {
	return lo.FilterMap(g.produced, func(p Produced, _ int) (string, bool) {
		return p.Unit.Name, p.Role == role && p.DataWidth == dataWidth
	})
}

func (g *Generator) validate() error {
	var errs []error
	if g.Profile == nil {
		errs = append(errs, errors.New("no target profile"))
	}
	if len(g.Variants) == 0 {
		errs = append(errs, errors.New("no variants"))
	}
	if dups := lo.FindDuplicatesBy(g.Variants, func(v profile.Variant) int { return v.DataWidth }); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("variant %s listed twice", dups[0].Suffix))
	}
	var elemBytes uint64
	if len(g.Variants) > 0 {
		elemBytes = lo.MaxBy(g.Variants, func(a, b profile.Variant) bool { return a.DataWidth > b.DataWidth }).ElementBytes()
	}
	if err := g.Config.ValidateFor(elemBytes); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Run generates every unit, the Makefile and the manifest into sink, then
// commits it. On any error the sink is discarded.
func (g *Generator) Run(sink cgen.Sink) (err error) {
	defer func() {
		if err != nil {
			if derr := sink.Discard(); derr != nil {
				klog.Warningf("discard partial output: %v", derr)
			}
		}
	}()
	if err := g.validate(); err != nil {
		return fmt.Errorf("invalid generator configuration: %w", err)
	}

	g.emitter = cgen.NewEmitter(sink)
	g.produced = nil
	g.wrappers = make(map[int]map[string][]cgen.Method)

	// 1. Clock helpers shared by every test unit.
	utils, err := NewUtilsUnit(g.Profile)
	if err != nil {
		return fmt.Errorf("utils: %w", err)
	}
	if err := g.emit(utils, RoleUtils, 0); err != nil {
		return err
	}

	// 2. Kernels and their test wrappers, per operator and variant.
	for _, op := range Operators() {
		for _, v := range g.Variants {
			if err := g.generateOperator(op, v); err != nil {
				return err
			}
		}
	}

	// 3. One measurement driver per variant.
	for _, v := range g.Variants {
		if err := g.generateMeasurement(v); err != nil {
			return err
		}
	}

	// 4. Program entry.
	if err := g.generateMain(); err != nil {
		return err
	}

	// 5. Build script and manifest.
	units := g.Units()
	if err := g.emitter.WriteFile(MakefileName, RenderMakefile(g.Profile, units)); err != nil {
		return err
	}
	manifest, err := NewManifest(g.Profile, g.Variants, g.Config, units).Marshal()
	if err != nil {
		return err
	}
	if err := g.emitter.WriteFile(ManifestName, manifest); err != nil {
		return err
	}

	if err := sink.Commit(); err != nil {
		return fmt.Errorf("commit output: %w", err)
	}
	klog.V(1).Infof("generated %d units (%d methods) for target %s", len(units), g.methodCount(), g.Profile.Name)
	return nil
}

func (g *Generator) methodCount() int {
	return lo.SumBy(g.produced, func(p Produced) int { return len(p.Unit.Methods) })
}

func (g *Generator) emit(u *cgen.Unit, role Role, dataWidth int) error {
	if err := g.emitter.Emit(u); err != nil {
		return fmt.Errorf("emit %s: %w", u.Name, err)
	}
	g.produced = append(g.produced, Produced{Unit: u, Role: role, DataWidth: dataWidth})
	return nil
}

// generateOperator emits "<op><suffix>" holding one kernel per loop width
// and "test_<op><suffix>" holding the matching wrappers.
func (g *Generator) generateOperator(op Operator, v profile.Variant) error {
	name := op.Name + v.Suffix
	kernels := cgen.NewUnit(name, cgen.Normal, []string{"cstddef", "cstdint"}, nil)
	tests := cgen.NewUnit(TestPrefix+name, cgen.Normal,
		[]string{"cstddef", "cstdint", "iostream"}, []string{name, UtilsName})

	var wrappers []cgen.Method
	for _, w := range v.LoopWidths() {
		kernel, err := op.Kernel(g.Profile, v, w)
		if err != nil {
			return fmt.Errorf("%s kernel width %d: %w", name, w, err)
		}
		wrapper, err := NewTestWrapper(kernel, op, v, w)
		if err != nil {
			return err
		}
		klog.V(2).Infof("method %s / %s", kernel.Name(), wrapper.Name())
		kernels.AddMethod(kernel)
		tests.AddMethod(wrapper)
		wrappers = append(wrappers, wrapper)
	}
	if g.wrappers[v.DataWidth] == nil {
		g.wrappers[v.DataWidth] = make(map[string][]cgen.Method)
	}
	g.wrappers[v.DataWidth][op.Name] = wrappers

	if err := g.emit(kernels, RoleKernel, v.DataWidth); err != nil {
		return err
	}
	return g.emit(tests, RoleTest, v.DataWidth)
}

func (g *Generator) generateMeasurement(v profile.Variant) error {
	driver, err := NewMeasurementDriver(v, g.wrappers[v.DataWidth], g.Config.Seed)
	if err != nil {
		return err
	}
	requires := append([]string{UtilsName}, g.UnitNames(RoleTest, v.DataWidth)...)
	u := cgen.NewUnit(MeasurementName(v), cgen.Normal,
		[]string{"cstddef", "cstdint", "cstdlib", "ctime", "iostream"}, requires)
	u.AddMethod(driver)
	return g.emit(u, RoleMeasurement, v.DataWidth)
}

func (g *Generator) generateMain() error {
	entry, err := NewEntryPoint(g.Config, g.Variants)
	if err != nil {
		return err
	}
	var measurements []string
	for _, v := range g.Variants {
		measurements = append(measurements, g.UnitNames(RoleMeasurement, v.DataWidth)...)
	}
	u := cgen.NewUnit(MainName, cgen.ProgramEntry, MainHeaders, append([]string{UtilsName}, measurements...))
	for _, d := range MainDefines(g.Config) {
		u.AddDefine(d.Name, d.Value)
	}
	u.AddMethod(entry)
	return g.emit(u, RoleMain, 0)
}

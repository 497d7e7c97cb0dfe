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

// Command ramgen generates C++ memory bandwidth benchmarks.
//
// Usage:
//
//	ramgen --target ve --out generated
//	ramgen --target host --variants 32,64 --sizes 16KB,1MB,1GB --seed 7
//	ramgen --archive tree.txtar
//	ramgen targets
//
// The generated tree holds one kernel unit and one test unit per operator
// and variant, a measurement driver per variant, main.cpp, a Makefile and
// manifest.json. Building it and running ./ramometer writes one
// "Op;bits;loopWidth;length;reps;total;perRep" record per timed call.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ajroetker/ramometer/bench"
	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

// options holds the generate command's flag values.
type options struct {
	out             string
	target          string
	variants        []int
	sizes           []string
	alignment       uint64
	testRepetitions int
	results         string
	seed            int64
	clockHz         uint64
	archive         string
	force           bool
}

func defaultOptions() *options {
	cfg := bench.DefaultConfig()
	return &options{
		out:    "generated",
		target: "ve",
		variants: lo.Map(profile.EnabledVariants(), func(v profile.Variant, _ int) int {
			return v.DataWidth
		}),
		sizes:           lo.Map(cfg.BufferSizes, func(s uint64, _ int) string { return bench.FormatSize(s) }),
		alignment:       cfg.Alignment,
		testRepetitions: cfg.TestRepetitions,
		results:         cfg.ResultsFile,
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.out, "out", "o", o.out, "Output directory (replaced atomically)")
	fs.StringVarP(&o.target, "target", "t", o.target, "Target profile ("+strings.Join(profile.Names(), ", ")+")")
	fs.IntSliceVar(&o.variants, "variants", o.variants, "Data widths to generate")
	fs.StringSliceVar(&o.sizes, "sizes", o.sizes, "Buffer sizes, e.g. 16KB,1MB,4GB (k/m/g are decimal)")
	fs.Uint64Var(&o.alignment, "alignment", o.alignment, "Buffer alignment in bytes")
	fs.IntVar(&o.testRepetitions, "test-repetitions", o.testRepetitions, "Test repetitions per loop width")
	fs.StringVar(&o.results, "results", o.results, "Results file written by the generated program")
	fs.Int64Var(&o.seed, "seed", o.seed, "Fixed seed for dummy indices (0 seeds from the clock)")
	fs.Uint64Var(&o.clockHz, "clock-hz", o.clockHz, "Override the target clock frequency")
	fs.BoolVar(&o.force, "force", o.force, "Replace --out even when it holds files ramgen did not generate")
	fs.StringVar(&o.archive, "archive", o.archive, "Write a txtar archive to this file ('-' for stdout) instead of a directory")
}

// generator resolves the options into a ready to run Generator.
func (o *options) generator() (*bench.Generator, error) {
	p, err := profile.Get(o.target)
	if err != nil {
		return nil, err
	}
	if o.clockHz != 0 {
		p = p.WithClockHz(o.clockHz)
	}

	variants := make([]profile.Variant, 0, len(o.variants))
	for _, w := range lo.Uniq(o.variants) {
		v, err := profile.VariantByWidth(w)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	sizes, err := bench.ParseSizes(o.sizes)
	if err != nil {
		return nil, err
	}
	cfg := bench.DefaultConfig()
	cfg.BufferSizes = lo.Uniq(sizes)
	cfg.Alignment = o.alignment
	cfg.TestRepetitions = o.testRepetitions
	cfg.ResultsFile = o.results
	cfg.Seed = o.seed

	return &bench.Generator{Profile: p, Variants: variants, Config: cfg}, nil
}

// sink opens the output the tree is written to and names its destination.
func (o *options) sink(stdout io.Writer) (cgen.Sink, string, func() error, error) {
	noop := func() error { return nil }
	switch o.archive {
	case "":
		s, err := cgen.NewDirSink(o.out, bench.ManifestName)
		if err != nil {
			return nil, "", nil, err
		}
		s.Force = o.force
		return s, s.Root(), noop, nil
	case "-":
		return cgen.NewArchiveSink(stdout), "-", noop, nil
	}
	f, err := os.Create(o.archive)
	if err != nil {
		return nil, "", nil, fmt.Errorf("create archive: %w", err)
	}
	return cgen.NewArchiveSink(f), o.archive, f.Close, nil
}

func (o *options) run(cmd *cobra.Command) error {
	g, err := o.generator()
	if err != nil {
		return err
	}
	sink, dest, closeFn, err := o.sink(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	runErr := g.Run(sink)
	if err := closeFn(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close archive: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	if dest != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "ramgen: generated %d units for target %s in %s\n", len(g.Units()), g.Profile.Name, dest)
	}
	return nil
}

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the available target profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOMPILER\tCLOCK HZ\tDESCRIPTION")
			for _, p := range append(profile.Profiles(), profile.Host()) {
				fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\n", p.Name, p.Compiler, strings.Join(p.CompilerFlags, " "), p.ClockHz, p.Description)
			}
			return w.Flush()
		},
	}
}

func newRootCommand() *cobra.Command {
	o := defaultOptions()
	cmd := &cobra.Command{
		Use:           "ramgen",
		Short:         "Generate C++ memory read/copy/write benchmarks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}
	o.addFlags(cmd.Flags())

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newTargetsCommand())
	return cmd
}

func main() {
	defer klog.Flush()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

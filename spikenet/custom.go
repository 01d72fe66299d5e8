// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"github.com/snnlab/spikenet/eqn"
)

// CustomParams define a neuron model from user-supplied equation text,
// compiled once by the eqn package before a run starts.  Eqs fixes the
// state variables and their derivatives, one "d<var>/dt = <expr>" line per
// variable; Thr is a single comparison expression; Rst is a
// semicolon-separated list of assignments.  All three are required.
type CustomParams struct {
	Eqs string `width:"60" desc:"derivative equations, one d<var>/dt = <expr> line per state variable"`
	Thr string `width:"40" desc:"spike threshold condition, e.g. v >= 30"`
	Rst string `width:"40" desc:"post-spike reset assignments, e.g. v = -65; u += 2"`

	sys   *eqn.System
	cond  *eqn.Cond
	reset eqn.Assigns
}

func (cp *CustomParams) Update() {
}

func (cp *CustomParams) Defaults() {
}

// Compile compiles the three equation fields.  It is idempotent: an
// already-compiled model with unchanged text recompiles harmlessly.
func (cp *CustomParams) Compile() error {
	sys, err := eqn.CompileSystem(cp.Eqs)
	if err != nil {
		return err
	}
	cond, err := sys.CompileCond(cp.Thr)
	if err != nil {
		return err
	}
	reset, err := sys.CompileAssigns(cp.Rst)
	if err != nil {
		return err
	}
	cp.sys = sys
	cp.cond = cond
	cp.reset = reset
	return nil
}

// Validate reports each missing field separately, and compiles the
// equations when all three are present, reporting any compile error.
func (cp *CustomParams) Validate(errs *ConfigErrs) {
	miss := false
	if cp.Eqs == "" {
		errs.Addf("custom: equations are required (d<var>/dt = <expr> lines)")
		miss = true
	}
	if cp.Thr == "" {
		errs.Addf("custom: threshold condition is required")
		miss = true
	}
	if cp.Rst == "" {
		errs.Addf("custom: reset assignments are required")
		miss = true
	}
	if miss {
		return
	}
	errs.Add(cp.Compile())
}

func (cp *CustomParams) VarNames() []string {
	if cp.sys == nil {
		return nil
	}
	return cp.sys.VarNames
}

func (cp *CustomParams) InitState(st []float32) {
	for i := range st {
		st[i] = 0
	}
}

func (cp *CustomParams) Deriv(st []float32, in, t float32, d []float32) {
	cp.sys.Deriv(st, in, t, d)
}

func (cp *CustomParams) Thresholded(st []float32, in, t float32) bool {
	return cp.cond.Eval(st, in, t)
}

func (cp *CustomParams) Reset(st []float32, in, t float32) {
	cp.reset.Apply(st, in, t)
}

func (cp *CustomParams) SynVar() int {
	return 0
}

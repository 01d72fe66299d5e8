// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import "github.com/goki/mat32"

// LIFParams are the leaky integrate-and-fire model parameters.  The
// membrane variable v relaxes toward the drive current with time constant
// Tau, spikes when it exceeds Thr, and restarts at VmR:
//
//	dv/dt = (I - v) / Tau
type LIFParams struct {
	Thr float32 `def:"1" desc:"spike threshold on v"`
	VmR float32 `def:"0" desc:"post-spike reset value for v -- must be below Thr"`
	Tau float32 `def:"10" min:"1" desc:"membrane time constant in ms"`

	Dt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / tau"`
}

func (lp *LIFParams) Update() {
	lp.Dt = 1 / lp.Tau
}

func (lp *LIFParams) Defaults() {
	lp.Thr = 1
	lp.VmR = 0
	lp.Tau = 10
	lp.Update()
}

func (lp *LIFParams) Validate(errs *ConfigErrs) {
	if lp.Thr <= lp.VmR {
		errs.Addf("lif: threshold %g should be greater than reset value %g", lp.Thr, lp.VmR)
	}
	if lp.Tau <= 0 {
		errs.Addf("lif: membrane time constant %g must be positive", lp.Tau)
	}
}

var lifVarNames = []string{"v"}

func (lp *LIFParams) VarNames() []string {
	return lifVarNames
}

func (lp *LIFParams) InitState(st []float32) {
	st[0] = 0
}

func (lp *LIFParams) Deriv(st []float32, in, t float32, d []float32) {
	d[0] = (in - st[0]) * lp.Dt
}

// StepExact advances v by the closed-form exponential relaxation toward
// the drive current, which is exact while the drive is constant within
// the step and stable for any step size.
func (lp *LIFParams) StepExact(st []float32, in, t, dt float32) {
	st[0] = in + (st[0]-in)*mat32.Exp(-dt*lp.Dt)
}

func (lp *LIFParams) Thresholded(st []float32, in, t float32) bool {
	return st[0] > lp.Thr
}

func (lp *LIFParams) Reset(st []float32, in, t float32) {
	st[0] = lp.VmR
}

func (lp *LIFParams) SynVar() int {
	return 0
}

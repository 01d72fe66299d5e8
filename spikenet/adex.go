// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"github.com/goki/mat32"
)

// AdEx membrane constants, in physical units (nS, mV, pF).  These are part
// of the model definition, not user parameters.
const (
	// AdExGbarL is the leak conductance in nS
	AdExGbarL = 10

	// AdExEL is the leak reversal (resting) potential in mV, also the
	// post-spike reset value for v
	AdExEL = -65

	// AdExVT is the spike threshold potential in mV
	AdExVT = -50

	// AdExC is the membrane capacitance in pF
	AdExC = 200
)

// AdExParams are the adaptive exponential integrate-and-fire model
// parameters, in physical units (mV, pA, ms):
//
//	dv/dt = (-gL (v - EL) + gL DeltaT exp((v - VT)/DeltaT) - w + I) / C
//	dw/dt = (A (v - EL) - w) / TauW
//
// spike at v > VT, reset v = EL, w += B.  The drive current I is in pA,
// unlike the dimensionless drive of the other models, so a much larger
// stimulus current (order 200 pA) is needed to reach threshold.
type AdExParams struct {
	DeltaT float32 `def:"2" min:"0.1" desc:"slope factor of the exponential spike initiation term, in mV"`
	A      float32 `def:"0.02" desc:"subthreshold adaptation conductance in nS"`
	TauW   float32 `def:"30" min:"1" desc:"adaptation time constant in ms"`
	B      float32 `def:"0.2" desc:"spike-triggered adaptation increment in pA"`

	WDt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / tau_w"`
}

func (ap *AdExParams) Update() {
	ap.WDt = 1 / ap.TauW
}

func (ap *AdExParams) Defaults() {
	ap.DeltaT = 2
	ap.A = 0.02
	ap.TauW = 30
	ap.B = 0.2
	ap.Update()
}

func (ap *AdExParams) Validate(errs *ConfigErrs) {
	if ap.DeltaT <= 0 {
		errs.Addf("adex: slope factor deltaT = %g must be positive", ap.DeltaT)
	}
	if ap.TauW <= 0 {
		errs.Addf("adex: adaptation time constant tau_w = %g must be positive", ap.TauW)
	}
}

var adexVarNames = []string{"v", "w"}

func (ap *AdExParams) VarNames() []string {
	return adexVarNames
}

func (ap *AdExParams) InitState(st []float32) {
	st[0] = AdExEL
	st[1] = 0
}

func (ap *AdExParams) Deriv(st []float32, in, t float32, d []float32) {
	v, w := st[0], st[1]
	exp := AdExGbarL * ap.DeltaT * mat32.FastExp((v-AdExVT)/ap.DeltaT)
	// cap the spike current so one Euler step past threshold cannot
	// blow up before the threshold test catches it
	if exp > adexExpMax {
		exp = adexExpMax
	}
	d[0] = (-AdExGbarL*(v-AdExEL) + exp - w + in) / AdExC
	d[1] = (ap.A*(v-AdExEL) - w) * ap.WDt
}

// adexExpMax caps the exponential spike current, in pA.
const adexExpMax = 1000

func (ap *AdExParams) Thresholded(st []float32, in, t float32) bool {
	return st[0] > AdExVT
}

func (ap *AdExParams) Reset(st []float32, in, t float32) {
	st[0] = AdExEL
	st[1] += ap.B
}

func (ap *AdExParams) SynVar() int {
	return SynCurrent
}

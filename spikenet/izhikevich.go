// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

// IzhiParams are the Izhikevich model parameters: a fast membrane variable
// v with quadratic dynamics and a slow recovery variable u:
//
//	dv/dt = 0.04 v^2 + 5 v + 140 - u + I
//	du/dt = A (B v - u)
//
// spike at v >= 30, reset v = C, u += D.  The standard (A, B, C, D)
// settings cover regular spiking, bursting, chattering etc.
type IzhiParams struct {
	A float32 `def:"0.02" desc:"recovery time scale -- smaller is slower recovery"`
	B float32 `def:"0.2" desc:"sensitivity of recovery to subthreshold v fluctuations"`
	C float32 `def:"-65" desc:"post-spike reset value for v"`
	D float32 `def:"2" desc:"post-spike increment of the recovery variable u"`
}

func (ip *IzhiParams) Update() {
}

func (ip *IzhiParams) Defaults() {
	ip.A = 0.02
	ip.B = 0.2
	ip.C = -65
	ip.D = 2
	ip.Update()
}

// izhiThr is the fixed spike cutoff on v -- part of the model definition,
// as the quadratic term carries v to +inf in finite time past it.
const izhiThr = 30

func (ip *IzhiParams) Validate(errs *ConfigErrs) {
	if ip.A <= 0 {
		errs.Addf("izhikevich: recovery time scale a = %g must be positive", ip.A)
	}
	if ip.C >= izhiThr {
		errs.Addf("izhikevich: reset value c = %g must be below the %g spike cutoff", ip.C, float32(izhiThr))
	}
}

var izhiVarNames = []string{"v", "u"}

func (ip *IzhiParams) VarNames() []string {
	return izhiVarNames
}

func (ip *IzhiParams) InitState(st []float32) {
	st[0] = 0
	st[1] = 0
}

func (ip *IzhiParams) Deriv(st []float32, in, t float32, d []float32) {
	v, u := st[0], st[1]
	d[0] = 0.04*v*v + 5*v + 140 - u + in
	d[1] = ip.A * (ip.B*v - u)
}

func (ip *IzhiParams) Thresholded(st []float32, in, t float32) bool {
	return st[0] >= izhiThr
}

func (ip *IzhiParams) Reset(st []float32, in, t float32) {
	st[0] = ip.C
	st[1] += ip.D
}

func (ip *IzhiParams) SynVar() int {
	return 0
}

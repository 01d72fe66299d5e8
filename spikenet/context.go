// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

// Context contains the timing state for one run.  Each Network owns its
// own Context, so concurrent runs never share counters.
type Context struct {

	// step counter: number of integration steps taken in the current run.
	// A run of S steps records S+1 states, step 0 being the initial state.
	Step int

	// accumulated simulation time in ms (= Step * DtMS)
	TimeMS float32

	// integration time step in ms
	DtMS float32 `def:"0.1"`
}

// NewContext returns a new Context with default parameters.
func NewContext() *Context {
	ctx := &Context{}
	ctx.Defaults()
	return ctx
}

// Defaults sets default values
func (ctx *Context) Defaults() {
	ctx.DtMS = 0.1
}

// Reset resets the counters back to zero
func (ctx *Context) Reset() {
	ctx.Step = 0
	ctx.TimeMS = 0
	if ctx.DtMS == 0 {
		ctx.Defaults()
	}
}

// StepInc advances one integration step
func (ctx *Context) StepInc() {
	ctx.Step++
	ctx.TimeMS += ctx.DtMS
}

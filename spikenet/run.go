// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"errors"

	"github.com/emer/emergent/v2/timer"
	"github.com/goki/mat32"
)

// exactStepper is implemented by models with a closed-form state update
// for piecewise-constant drive within a step, used instead of the Euler
// update for numerical stability.
type exactStepper interface {
	StepExact(st []float32, in, t, dt float32)
}

// Run integrates the built network from its initial state through all
// configured steps and returns the assembled result.  The loop is
// strictly sequential in simulated time; within each step the unit
// updates are data-parallel across Config.Threads workers, with a
// barrier before any cross-unit effect is applied.  A NaN or Inf in any
// state variable aborts immediately with a NumericalError naming the
// step and unit.  Build must have been called; Run consumes the built
// state, so call Build again before re-running.
func (nt *Network) Run() (*RunResult, error) {
	if !nt.built {
		return nil, errors.New("spikenet: Run called before Build")
	}
	nt.built = false

	var tmr timer.Time
	tmr.Start()

	mdl := nt.Model
	exact, _ := mdl.(exactStepper)
	varNms := mdl.VarNames()
	nvar := len(varNms)
	n := len(nt.Units)
	steps := nt.Config.Steps()
	dt := nt.Ctx.DtMS
	ntime := steps + 1
	synVar := mdl.SynVar()

	// per-unit scratch: derivative vectors, spike flags, numerical faults
	dv := make([]float32, n*nvar)
	spiked := make([]bool, n)
	faults := make([]*NumericalError, n)

	for {
		t := nt.Ctx.Step
		simt := nt.Ctx.TimeMS
		for vi, vn := range varNms {
			tr := nt.Traces[vn]
			for ui := range nt.Units {
				tr.Values[ui*ntime+t] = nt.Units[ui].S[vi]
			}
		}
		if t >= steps {
			break
		}

		var synIn []float32
		if synVar == SynCurrent {
			synIn = nt.Conn.Due(t)
		}
		nt.unitFun(func(ui int) {
			un := &nt.Units[ui]
			in := nt.Stim.Values[ui*ntime+t]
			if synIn != nil {
				in += synIn[ui]
			}
			d := dv[ui*nvar : (ui+1)*nvar]
			if exact != nil {
				exact.StepExact(un.S, in, simt, dt)
			} else {
				mdl.Deriv(un.S, in, simt, d)
				for vi := range un.S {
					un.S[vi] += dt * d[vi]
				}
			}
			for vi := range un.S {
				if mat32.IsNaN(un.S[vi]) || mat32.IsInf(un.S[vi], 0) {
					faults[ui] = &NumericalError{Step: t + 1, Unit: int32(ui), Var: varNms[vi], Val: un.S[vi]}
					return
				}
			}
			if spiked[ui] = mdl.Thresholded(un.S, in, simt); spiked[ui] {
				mdl.Reset(un.S, in, simt)
			}
		})
		for ui := range faults {
			if faults[ui] != nil {
				return nil, faults[ui]
			}
		}
		if synIn != nil {
			nt.Conn.DoneStep(t)
		}
		for ui := range nt.Units {
			if !spiked[ui] {
				continue
			}
			spiked[ui] = false
			nt.Units[ui].SpikeCount++
			nt.Spikes = append(nt.Spikes, SpikeEvent{Step: t + 1, Unit: int32(ui)})
			nt.Conn.SendSpike(int32(ui), t+1)
		}
		if synVar != SynCurrent && nt.Conn.Active {
			due := nt.Conn.Due(t + 1)
			for ui := range nt.Units {
				nt.Units[ui].S[synVar] += due[ui]
			}
			nt.Conn.DoneStep(t + 1)
		}
		nt.Ctx.StepInc()
	}

	tmr.Stop()
	res := &RunResult{
		Traces:   nt.Traces,
		Spikes:   nt.Spikes,
		Graph:    nt.Graph,
		Warnings: nt.Warnings,
		N:        n,
		Steps:    steps,
		DtMS:     dt,
		VarNames: varNms,
		MemVar:   varNms[0],
		MemUnit:  "1",
		WallSecs: tmr.TotalSecs(),
	}
	if nt.Config.Model == AdEx {
		res.MemUnit = "mV"
	}
	return res, nil
}

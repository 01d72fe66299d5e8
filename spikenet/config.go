// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"github.com/snnlab/spikenet/topo"
)

// Limits enforced at configuration time, before any computation starts.
const (
	// MaxUnits is the largest supported network size
	MaxUnits = 100

	// MaxSimTimeMS is the longest supported run, in ms
	MaxSimTimeMS = 10000

	// MaxSteps caps the total step count, bounding the runtime of any
	// accepted configuration
	MaxSteps = 100000
)

// SimConfig is the complete description of one run.  Validate must pass
// before Build/Run; it collects every problem at once rather than failing
// on the first.  All model parameter blocks are always present; only the
// one selected by Model is consulted.
type SimConfig struct {
	Model     ModelKind `desc:"which neuron model to simulate"`
	N         int       `def:"5" min:"1" max:"100" desc:"number of units"`
	SimTimeMS float32   `def:"100" min:"1" desc:"total simulated time in ms"`
	DtMS      float32   `def:"0.1" desc:"integration step size in ms"`
	Seed      int64     `desc:"random seed -- 0 means derive from the clock, any other value reproduces the run exactly"`
	Threads   int       `def:"1" desc:"number of worker goroutines for the per-step unit updates -- 1 means sequential"`

	LIF      LIFParams      `view:"inline" viewif:"Model=LIF" desc:"LIF model parameters"`
	Izhi     IzhiParams     `view:"inline" viewif:"Model=Izhikevich" desc:"Izhikevich model parameters"`
	AdEx     AdExParams     `view:"inline" viewif:"Model=AdEx" desc:"AdEx model parameters"`
	Custom   CustomParams   `view:"inline" viewif:"Model=Custom" desc:"custom model equations"`
	Stim     StimParams     `view:"inline" desc:"external stimulus parameters"`
	Coupling CouplingParams `view:"inline" desc:"synaptic coupling parameters"`
	Topo     topo.Params    `view:"inline" viewif:"Coupling.On" desc:"connection topology parameters"`
}

// Defaults sets default values on every block.
func (sc *SimConfig) Defaults() {
	sc.Model = LIF
	sc.N = 5
	sc.SimTimeMS = 100
	sc.DtMS = 0.1
	sc.Seed = 0
	sc.Threads = 1
	sc.LIF.Defaults()
	sc.Izhi.Defaults()
	sc.AdEx.Defaults()
	sc.Custom.Defaults()
	sc.Stim.Defaults()
	sc.Coupling.Defaults()
	sc.Topo.Defaults()
}

// Update recomputes derived values after any parameter change.
func (sc *SimConfig) Update() {
	sc.LIF.Update()
	sc.Izhi.Update()
	sc.AdEx.Update()
	sc.Custom.Update()
	sc.Stim.Update()
	sc.Coupling.Update()
}

// Steps returns the number of integration steps for the configured time
// and step size.  A run records Steps()+1 states, including the initial
// one.
func (sc *SimConfig) Steps() int {
	return int(sc.SimTimeMS / sc.DtMS)
}

// Validate checks the whole configuration and returns every problem
// found, plus any non-fatal warnings (odd ring K adjustment, inverted
// modular probabilities).  A nil error means a run can start.
func (sc *SimConfig) Validate() (warns []string, err error) {
	sc.Update()
	errs := &ConfigErrs{}
	if sc.Model < 0 || sc.Model >= ModelKindN {
		errs.Addf("config: unknown model kind %d", sc.Model)
	}
	if sc.N < 1 || sc.N > MaxUnits {
		errs.Addf("config: %d units outside supported range [1, %d]", sc.N, MaxUnits)
	}
	if sc.SimTimeMS <= 0 || sc.SimTimeMS > MaxSimTimeMS {
		errs.Addf("config: simulation time %g ms outside supported range (0, %d]", sc.SimTimeMS, MaxSimTimeMS)
	}
	if sc.DtMS <= 0 {
		errs.Addf("config: step size %g ms must be positive", sc.DtMS)
	} else {
		if sc.Steps() > MaxSteps {
			errs.Addf("config: %g ms at %g ms steps is %d steps, above the %d maximum", sc.SimTimeMS, sc.DtMS, sc.Steps(), MaxSteps)
		}
		if sc.SimTimeMS > 0 && sc.Steps() < 1 {
			errs.Addf("config: step size %g ms larger than simulation time %g ms", sc.DtMS, sc.SimTimeMS)
		}
	}
	if sc.Threads < 1 {
		errs.Addf("config: thread count %d must be at least 1", sc.Threads)
	}
	switch sc.Model {
	case LIF:
		sc.LIF.Validate(errs)
	case Izhikevich:
		sc.Izhi.Validate(errs)
	case AdEx:
		sc.AdEx.Validate(errs)
	case Custom:
		sc.Custom.Validate(errs)
	}
	sc.Stim.Validate(sc.SimTimeMS, errs)
	sc.Coupling.Validate(errs)
	if sc.Coupling.On && sc.N > 1 {
		tw, terrs := sc.Topo.Validate(sc.N)
		warns = append(warns, tw...)
		for _, te := range terrs {
			errs.Add(te)
		}
	}
	return warns, errs.Err()
}

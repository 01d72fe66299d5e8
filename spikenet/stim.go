// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"math/rand"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etensor"
	"github.com/goki/ki/kit"
)

// StimNoiseType is where noise is applied to the stimulus array.
type StimNoiseType int32

//go:generate stringer -type=StimNoiseType

var KiT_StimNoiseType = kit.Enums.AddEnum(StimNoiseTypeN, kit.NotBitFlag, nil)

func (ev StimNoiseType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StimNoiseType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The stimulus noise types
const (
	// NoNoise means no noise is added
	NoNoise StimNoiseType = iota

	// AddNoise adds an independent sample to every (unit, step) cell
	AddNoise

	// MultNoise scales every (unit, step) cell by 1 + sample
	MultNoise

	StimNoiseTypeN
)

// StimNoiseParams describe stimulus noise: the distribution (Mean, Var)
// per erand.RndParams, and where it applies.  Draws come from the run's
// own random source, never a shared one, so runs stay independent and a
// seed always reproduces the same stimulus.
type StimNoiseParams struct {
	erand.RndParams
	Type StimNoiseType `desc:"whether and how noise perturbs the stimulus array"`
}

func (sn *StimNoiseParams) Update() {
}

func (sn *StimNoiseParams) Defaults() {
	sn.Type = NoNoise
	sn.Dist = erand.Gaussian
	sn.Mean = 0
	sn.Var = 0.2
}

func (sn *StimNoiseParams) Validate(errs *ConfigErrs) {
	if sn.Type < 0 || sn.Type >= StimNoiseTypeN {
		errs.Addf("stim: unknown noise type %d", sn.Type)
	}
	if sn.Var < 0 {
		errs.Addf("stim: noise intensity %g must not be negative", sn.Var)
	}
}

// Draw samples one noise value from rnd per the configured distribution.
// Var is the standard deviation for Gaussian, the half-range for Uniform.
func (sn *StimNoiseParams) Draw(rnd *rand.Rand) float32 {
	switch sn.Dist {
	case erand.Gaussian:
		return float32(sn.Mean + sn.Var*rnd.NormFloat64())
	case erand.Uniform:
		return float32(sn.Mean + sn.Var*(2*rnd.Float64()-1))
	default:
		return float32(sn.Mean)
	}
}

// StimParams build the external drive array: a constant current injected
// over a time window, plus a small per-unit offset that breaks symmetry
// between otherwise-identical units, plus optional noise.  For the AdEx
// model the values are interpreted as pA; for the other models they are
// dimensionless.
type StimParams struct {
	Current float32         `def:"1.2" desc:"base injected current over the stimulus window -- pA for AdEx, dimensionless otherwise"`
	StartMS float32         `def:"10" min:"0" desc:"stimulus onset time in ms"`
	DurMS   float32         `def:"50" min:"0" desc:"stimulus duration in ms"`
	PerUnit float32         `def:"0.05" desc:"current increment per unit index, breaking symmetry across units"`
	Noise   StimNoiseParams `view:"inline" desc:"noise added to the stimulus array"`
}

func (sp *StimParams) Update() {
	sp.Noise.Update()
}

func (sp *StimParams) Defaults() {
	sp.Current = 1.2
	sp.StartMS = 10
	sp.DurMS = 50
	sp.PerUnit = 0.05
	sp.Noise.Defaults()
	sp.Update()
}

// Validate checks the window against the total simulation time.
func (sp *StimParams) Validate(simTimeMS float32, errs *ConfigErrs) {
	if sp.StartMS < 0 {
		errs.Addf("stim: start time %g ms must not be negative", sp.StartMS)
	}
	if sp.DurMS < 0 {
		errs.Addf("stim: duration %g ms must not be negative", sp.DurMS)
	}
	if sp.StartMS+sp.DurMS > simTimeMS {
		errs.Addf("stim: window end %g ms exceeds simulation time %g ms", sp.StartMS+sp.DurMS, simTimeMS)
	}
	sp.Noise.Validate(errs)
}

// Build computes the full drive array for n units over steps+1 time
// points at step size dtMS, using rnd for any noise draws.  The array is
// computed once before integration and read-only afterwards.
func (sp *StimParams) Build(n, steps int, dtMS float32, rnd *rand.Rand) *etensor.Float32 {
	nt := steps + 1
	stim := etensor.NewFloat32([]int{n, nt}, nil, []string{"Unit", "Time"})
	si := int(sp.StartMS / dtMS)
	ei := int((sp.StartMS + sp.DurMS) / dtMS)
	if si < 0 {
		si = 0
	}
	if ei > nt {
		ei = nt
	}
	for ui := 0; ui < n; ui++ {
		row := stim.Values[ui*nt : (ui+1)*nt]
		cur := sp.Current + sp.PerUnit*float32(ui)
		for ti := si; ti < ei; ti++ {
			row[ti] = cur
		}
		switch sp.Noise.Type {
		case AddNoise:
			for ti := range row {
				row[ti] += sp.Noise.Draw(rnd)
			}
		case MultNoise:
			for ti := range row {
				row[ti] *= 1 + sp.Noise.Draw(rnd)
			}
		}
	}
	return stim
}

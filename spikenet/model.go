// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// ModelKind is the neuron dynamics model to simulate.
type ModelKind int32

//go:generate stringer -type=ModelKind

var KiT_ModelKind = kit.Enums.AddEnum(ModelKindN, kit.NotBitFlag, nil)

func (ev ModelKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ModelKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The neuron model kinds
const (
	// LIF is the leaky integrate-and-fire model: one membrane variable
	// decaying toward the drive current, with a hard threshold and reset
	LIF ModelKind = iota

	// Izhikevich is the two-variable quadratic model with a slow recovery
	// variable, covering the standard repertoire of spiking patterns
	Izhikevich

	// AdEx is the adaptive exponential integrate-and-fire model in
	// physical units (mV, pA, ms), with an exponential spike initiation
	// term and a spike-triggered adaptation current
	AdEx

	// Custom compiles user-supplied derivative, threshold and reset
	// equations at configuration time
	Custom

	ModelKindN
)

// SynCurrent is the Model.SynVar value meaning presynaptic spikes perturb
// the drive current for one step instead of a state variable.
const SynCurrent = -1

// Model defines one point-neuron dynamics model over a per-unit float32
// state vector.  The model fixes the state variable names and order; all
// methods operate on a single unit's state slice, with the drive current
// in and the time t in ms passed through.  Implementations are params
// structs: a configured model is plain data until Defaults / Update /
// Validate have run.
type Model interface {
	// Defaults sets default parameter values
	Defaults()

	// Update recomputes derived parameter values after any change
	Update()

	// Validate appends every parameter problem to errs
	Validate(errs *ConfigErrs)

	// VarNames returns the state variable names, in state vector order
	VarNames() []string

	// InitState writes the initial state into st (len = len(VarNames))
	InitState(st []float32)

	// Deriv writes the time derivatives of state st into d
	Deriv(st []float32, in, t float32, d []float32)

	// Thresholded reports whether state st is at or past spike threshold
	Thresholded(st []float32, in, t float32) bool

	// Reset applies the post-spike reset rule to st
	Reset(st []float32, in, t float32)

	// SynVar returns the index of the state variable that presynaptic
	// spikes add the synaptic weight to, or SynCurrent when spikes
	// perturb the drive current for the arrival step instead
	SynVar() int
}

// NewModel returns the configured model for kind, backed by the matching
// params struct in cfg.  Custom models still need CustomParams.Compile
// (done by Validate) before use.
func NewModel(kind ModelKind, cfg *SimConfig) (Model, error) {
	switch kind {
	case LIF:
		return &cfg.LIF, nil
	case Izhikevich:
		return &cfg.Izhi, nil
	case AdEx:
		return &cfg.AdEx, nil
	case Custom:
		return &cfg.Custom, nil
	}
	return nil, fmt.Errorf("spikenet: unknown model kind %d", kind)
}

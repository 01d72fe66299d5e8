// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import "fmt"

// Unit holds one neuron's per-run state.  The state vector S is a slice
// into the network's backing array; its length and variable order come
// from the model (Model.VarNames).
type Unit struct {

	// model state variables, in Model.VarNames order
	S []float32

	// number of spikes this unit has fired so far this run
	SpikeCount int32
}

// SpikeEvent is one entry of the spike log: unit Unit crossed threshold
// at integration step Step.
type SpikeEvent struct {
	Step int
	Unit int32
}

// TimeMS returns the event time in ms for step size dtMS.
func (se SpikeEvent) TimeMS(dtMS float32) float32 {
	return float32(se.Step) * dtMS
}

// UnitVarNames returns the state variable names of the built model, in
// state vector order.  Only valid after Build.
func (nt *Network) UnitVarNames() []string {
	if nt.Model == nil {
		return nil
	}
	return nt.Model.VarNames()
}

// UnitVarIndex returns the state vector index of the named variable.
func (nt *Network) UnitVarIndex(nm string) (int, error) {
	for i, vn := range nt.UnitVarNames() {
		if vn == nm {
			return i, nil
		}
	}
	return -1, fmt.Errorf("spikenet: unit variable %q not found", nm)
}

// UnitVal returns the value of the named variable for the given unit, or
// an error if either does not exist.
func (nt *Network) UnitVal(nm string, ui int) (float32, error) {
	vi, err := nt.UnitVarIndex(nm)
	if err != nil {
		return 0, err
	}
	if ui < 0 || ui >= len(nt.Units) {
		return 0, fmt.Errorf("spikenet: unit index %d out of range", ui)
	}
	return nt.Units[ui].S[vi], nil
}

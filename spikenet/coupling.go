// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"github.com/emer/etable/v2/minmax"
	"github.com/snnlab/spikenet/topo"
)

// CouplingParams are the synapse parameters: a single fixed weight and
// delay shared by every connection.  The topology decides which
// connections exist; this decides what they do.
type CouplingParams struct {
	On      bool       `desc:"whether synaptic connections are enabled at all"`
	Wt      float32    `def:"0.5" desc:"perturbation applied to the target unit per presynaptic spike -- pA for current-coupled models, dimensionless otherwise"`
	DelayMS float32    `def:"1" min:"0.1" desc:"conduction delay from spike to delivery, in ms"`
	WtRange minmax.F32 `view:"inline" desc:"allowed range for the weight"`
}

func (cp *CouplingParams) Update() {
}

func (cp *CouplingParams) Defaults() {
	cp.On = false
	cp.Wt = 0.5
	cp.DelayMS = 1
	cp.WtRange.Set(-10, 10)
	cp.Update()
}

func (cp *CouplingParams) Validate(errs *ConfigErrs) {
	if !cp.On {
		return
	}
	if cp.Wt < cp.WtRange.Min || cp.Wt > cp.WtRange.Max {
		errs.Addf("coupling: weight %g outside allowed range [%g, %g]", cp.Wt, cp.WtRange.Min, cp.WtRange.Max)
	}
	if cp.DelayMS <= 0 {
		errs.Addf("coupling: delay %g ms must be positive", cp.DelayMS)
	}
}

// DelaySteps converts the delay to a whole number of integration steps,
// at least 1 so a spike never affects the step it occurred on.
func (cp *CouplingParams) DelaySteps(dtMS float32) int {
	ds := int(cp.DelayMS/dtMS + 0.5)
	if ds < 1 {
		ds = 1
	}
	return ds
}

// Coupling is the built delivery table for one run: the realized edges in
// a flat sender-major layout, plus a ring buffer of pending perturbations
// indexed by delivery step modulo delay+1.  A Coupling built from an
// empty edge set is inactive and contributes nothing.
type Coupling struct {

	// whether any deliveries can happen: enabled and at least one edge
	Active bool

	// shared connection weight
	Wt float32

	// conduction delay in steps
	Delay int

	// number of sending connections per unit
	SConN []int32

	// starting index of each unit's targets in SConIndex
	SConIndexSt []int32

	// flat list of target unit indexes, grouped by sender
	SConIndex []int32

	// pending perturbation per unit, per delivery slot; slot = step % (Delay+1)
	ring [][]float32
}

// BuildCoupling realizes the delivery table for n units from the graph
// edges.  gr may be nil (coupling disabled).
func BuildCoupling(cp *CouplingParams, gr *topo.Graph, n int, dtMS float32) *Coupling {
	cn := &Coupling{Wt: cp.Wt}
	if !cp.On || gr == nil || gr.NEdges() == 0 {
		return cn
	}
	cn.Active = true
	cn.Delay = cp.DelaySteps(dtMS)
	cn.SConN = make([]int32, n)
	cn.SConIndexSt = make([]int32, n)
	for _, ed := range gr.Edges {
		cn.SConN[ed.Src]++
	}
	idx := int32(0)
	for ui := 0; ui < n; ui++ {
		cn.SConIndexSt[ui] = idx
		idx += cn.SConN[ui]
	}
	cn.SConIndex = make([]int32, idx)
	fill := make([]int32, n)
	for _, ed := range gr.Edges {
		cn.SConIndex[cn.SConIndexSt[ed.Src]+fill[ed.Src]] = ed.Dst
		fill[ed.Src]++
	}
	cn.ring = make([][]float32, cn.Delay+1)
	for i := range cn.ring {
		cn.ring[i] = make([]float32, n)
	}
	return cn
}

// SendSpike schedules the weight onto every target of unit src, for
// delivery Delay steps after the given step.
func (cn *Coupling) SendSpike(src int32, step int) {
	if !cn.Active {
		return
	}
	slot := cn.ring[(step+cn.Delay)%len(cn.ring)]
	st := cn.SConIndexSt[src]
	for ci := int32(0); ci < cn.SConN[src]; ci++ {
		slot[cn.SConIndex[st+ci]] += cn.Wt
	}
}

// Due returns the pending perturbations deliverable at step, or nil when
// inactive.  The caller owns the slice until the next DoneStep.
func (cn *Coupling) Due(step int) []float32 {
	if !cn.Active {
		return nil
	}
	return cn.ring[step%len(cn.ring)]
}

// DoneStep clears the delivered slot for step so it can be reused.
func (cn *Coupling) DoneStep(step int) {
	if !cn.Active {
		return
	}
	slot := cn.ring[step%len(cn.ring)]
	for i := range slot {
		slot[i] = 0
	}
}

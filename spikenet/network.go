// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/etensor"
	"github.com/snnlab/spikenet/topo"
)

// Network is one simulated network: the configuration, the built model
// and tables, and all mutable run state.  Every Network owns all of its
// state, so independent Networks can run concurrently; a Network itself
// must not be shared between concurrent runs.
type Network struct {

	// optional name, used in reports
	Nm string `desc:"network name"`

	// the complete run configuration -- validated by Build
	Config SimConfig

	// the model selected by Config.Model, configured and validated
	Model Model `view:"-"`

	// per-unit state
	Units []Unit

	// backing store for all unit state vectors
	StateVals []float32 `view:"-"`

	// timing state for the current run
	Ctx Context

	// per-run random source, seeded from Config.Seed
	Rand *rand.Rand `view:"-"`

	// realized connection topology, nil when coupling is off or N == 1
	Graph *topo.Graph

	// built synaptic delivery table
	Conn *Coupling `view:"-"`

	// external drive array [N, steps+1], built once per Build
	Stim *etensor.Float32 `view:"no-inline"`

	// recorded state traces, one [N, steps+1] tensor per model variable
	Traces map[string]*etensor.Float32 `view:"no-inline"`

	// recorded spike events, ordered by (step, unit)
	Spikes []SpikeEvent

	// non-fatal validation warnings from the last Build
	Warnings []string

	// wait group for fanning unit updates out across threads
	WaitGp sync.WaitGroup `view:"-"`

	built bool
}

// NewNetwork returns a new network with default configuration.
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Config.Defaults()
	return nt
}

// Defaults restores the default configuration.
func (nt *Network) Defaults() {
	nt.Config.Defaults()
}

// Name returns the network name.
func (nt *Network) Name() string { return nt.Nm }

// Class is part of the params styler interface.
func (nt *Network) Class() string { return "" }

// TypeName is part of the params styler interface.
func (nt *Network) TypeName() string { return "Network" }

// NUnits returns the configured number of units.
func (nt *Network) NUnits() int { return nt.Config.N }

// Build validates the configuration (returning the complete list of
// problems if any), then constructs everything a run needs: the model,
// the random source, the topology and coupling, the stimulus array, the
// unit state and the trace tensors.  Build must be called before Run,
// and again after any configuration change.
func (nt *Network) Build() error {
	warns, err := nt.Config.Validate()
	nt.Warnings = warns
	if err != nil {
		return err
	}
	mdl, err := NewModel(nt.Config.Model, &nt.Config)
	if err != nil {
		return err
	}
	nt.Model = mdl

	seed := nt.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	nt.Rand = rand.New(rand.NewSource(seed))

	n := nt.Config.N
	steps := nt.Config.Steps()

	nt.Graph = nil
	if nt.Config.Coupling.On && n > 1 {
		gr, err := nt.Config.Topo.Gen(n, nt.Rand)
		if err != nil {
			return err
		}
		nt.Graph = gr
	}
	nt.Conn = BuildCoupling(&nt.Config.Coupling, nt.Graph, n, nt.Config.DtMS)

	nt.Stim = nt.Config.Stim.Build(n, steps, nt.Config.DtMS, nt.Rand)

	nvar := len(mdl.VarNames())
	nt.StateVals = make([]float32, n*nvar)
	nt.Units = make([]Unit, n)
	for ui := range nt.Units {
		un := &nt.Units[ui]
		un.S = nt.StateVals[ui*nvar : (ui+1)*nvar]
		mdl.InitState(un.S)
		un.SpikeCount = 0
	}

	nt.Traces = make(map[string]*etensor.Float32, nvar)
	for _, vn := range mdl.VarNames() {
		nt.Traces[vn] = etensor.NewFloat32([]int{n, steps + 1}, nil, []string{"Unit", "Time"})
	}
	nt.Spikes = nt.Spikes[:0]

	nt.Ctx.Reset()
	nt.Ctx.DtMS = nt.Config.DtMS
	nt.built = true
	return nil
}

// SizeReport returns a human-readable summary of the memory allocated by
// Build.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	n := nt.Config.N
	stateMem := len(nt.StateVals) * int(unsafe.Sizeof(float32(0)))
	stimMem := len(nt.Stim.Values) * int(unsafe.Sizeof(float32(0)))
	trcMem := 0
	for _, tr := range nt.Traces {
		trcMem += len(tr.Values) * int(unsafe.Sizeof(float32(0)))
	}
	synMem := 0
	nedge := 0
	if nt.Conn != nil {
		synMem = (len(nt.Conn.SConIndex) + 2*len(nt.Conn.SConN)) * int(unsafe.Sizeof(int32(0)))
		for _, slot := range nt.Conn.ring {
			synMem += len(slot) * int(unsafe.Sizeof(float32(0)))
		}
	}
	if nt.Graph != nil {
		nedge = nt.Graph.NEdges()
	}
	fmt.Fprintf(&b, "%14s:\t Units: %d\t StateMem: %v\n", nt.Nm, n, (datasize.ByteSize)(stateMem).HumanReadable())
	fmt.Fprintf(&b, "%14s \t Edges: %d\t SynMem: %v\n", "", nedge, (datasize.ByteSize)(synMem).HumanReadable())
	fmt.Fprintf(&b, "%14s \t Stim: %v\t Traces: %v\n", "", (datasize.ByteSize)(stimMem).HumanReadable(), (datasize.ByteSize)(trcMem).HumanReadable())
	return b.String()
}

// unitFun runs fun for every unit index, fanning out across
// Config.Threads goroutines in contiguous ranges, and waits for all to
// finish before returning.  With Threads == 1 it runs inline.
func (nt *Network) unitFun(fun func(ui int)) {
	n := len(nt.Units)
	nth := nt.Config.Threads
	if nth <= 1 || n < 2*nth {
		for ui := 0; ui < n; ui++ {
			fun(ui)
		}
		return
	}
	chk := (n + nth - 1) / nth
	for st := 0; st < n; st += chk {
		ed := st + chk
		if ed > n {
			ed = n
		}
		nt.WaitGp.Add(1)
		go func(st, ed int) {
			for ui := st; ui < ed; ui++ {
				fun(ui)
			}
			nt.WaitGp.Done()
		}(st, ed)
	}
	nt.WaitGp.Wait()
}

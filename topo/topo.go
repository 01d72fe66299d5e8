// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package topo generates directed network topologies over integer unit
indexes, as flat edge lists.

Five generator kinds are provided: Random (Erdős–Rényi G(n,p)),
SmallWorld (Watts–Strogatz ring rewiring), ScaleFree (Barabási–Albert
preferential attachment), Regular (circulant ring lattice), and Modular
(stochastic block model).  All randomness comes from a caller-supplied
rand.Rand, so a given seed always realizes the same graph.  No generator
ever emits a self-loop.

Parameter validation is separate from generation: Validate reports the
complete list of problems for a given network size, so a caller can
surface every configuration error at once before running anything.  An
empty realized edge set is not an error -- it just means the coupling
stays inactive.
*/
package topo

import (
	"fmt"
	"math/rand"

	"github.com/goki/ki/kit"
)

// Kind is the topology generator kind.
type Kind int32

//go:generate stringer -type=Kind

var KiT_Kind = kit.Enums.AddEnum(KindN, kit.NotBitFlag, nil)

func (ev Kind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The topology generator kinds
const (
	// Random connects each ordered pair of distinct units independently
	// with probability Prob (directed Erdős–Rényi G(n,p))
	Random Kind = iota

	// SmallWorld starts from a ring where each unit reaches its K/2
	// clockwise neighbors and rewires each edge with probability PRewire
	// (Watts–Strogatz), preserving the edge count
	SmallWorld

	// ScaleFree grows the network one unit at a time, attaching each new
	// unit to M existing units with probability proportional to their
	// degree (Barabási–Albert)
	ScaleFree

	// Regular is the un-rewired ring: each unit reaches its K/2 clockwise
	// neighbors (circulant lattice)
	Regular

	// Modular partitions units into NModules blocks with dense PIntra
	// connectivity inside a block and sparse PInter across blocks
	// (stochastic block model)
	Modular

	KindN
)

// Edge is one directed connection from unit Src to unit Dst.
type Edge struct {
	Src int32
	Dst int32
}

// Graph is a realized topology: the directed edge list plus a record of
// any parameter adjustment the generator had to make.
type Graph struct {
	// Kind that generated this graph
	Kind Kind

	// realized directed edges, in generation order
	Edges []Edge

	// neighbor count actually used by SmallWorld / Regular -- equals the
	// configured K unless that was odd
	KUsed int

	// KAdjusted is set when an odd configured K was raised to KUsed
	KAdjusted bool
}

// NEdges returns the number of realized edges.
func (gr *Graph) NEdges() int {
	return len(gr.Edges)
}

// Degrees returns per-unit out-degree and in-degree counts for n units.
func (gr *Graph) Degrees(n int) (out, in []int) {
	out = make([]int, n)
	in = make([]int, n)
	for _, ed := range gr.Edges {
		out[ed.Src]++
		in[ed.Dst]++
	}
	return
}

// Params are the generation parameters for all topology kinds.  Only the
// fields for the selected Kind are consulted.
type Params struct {
	// generator kind
	Kind Kind `desc:"which topology generator to use"`

	// connection probability for Random
	Prob float32 `viewif:"Kind=Random" min:"0" max:"1" def:"0.2" desc:"connection probability for each ordered pair of distinct units"`

	// ring neighbor count for SmallWorld and Regular; must be even and < N
	K int `viewif:"Kind=SmallWorld,Regular" min:"2" def:"2" desc:"number of ring neighbors per unit -- K/2 on each side -- odd values are raised to the next even value and reported on the Graph"`

	// rewiring probability for SmallWorld
	PRewire float32 `viewif:"Kind=SmallWorld" min:"0" max:"1" def:"0.1" desc:"probability of rewiring each ring edge to a random target"`

	// attachment count for ScaleFree
	M int `viewif:"Kind=ScaleFree" min:"1" def:"2" desc:"edges added from each new unit to existing units"`

	// module count for Modular
	NModules int `viewif:"Kind=Modular" min:"2" def:"4" desc:"number of modules to partition units into"`

	// within-module probability for Modular
	PIntra float32 `viewif:"Kind=Modular" min:"0" max:"1" def:"0.2" desc:"connection probability inside a module"`

	// across-module probability for Modular
	PInter float32 `viewif:"Kind=Modular" min:"0" max:"1" def:"0.01" desc:"connection probability across modules"`
}

func (tp *Params) Defaults() {
	tp.Kind = Random
	tp.Prob = 0.2
	tp.K = 2
	tp.PRewire = 0.1
	tp.M = 2
	tp.NModules = 4
	tp.PIntra = 0.2
	tp.PInter = 0.01
}

// Validate checks the parameters for a network of n units and returns the
// complete list of problems, plus any non-fatal warnings.  A nil error
// slice means generation will succeed.
func (tp *Params) Validate(n int) (warns []string, errs []error) {
	addErr := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("topo: "+format, args...))
	}
	if tp.Kind < 0 || tp.Kind >= KindN {
		addErr("unknown topology kind %d", tp.Kind)
		return
	}
	switch tp.Kind {
	case Random:
		if tp.Prob < 0 || tp.Prob > 1 {
			addErr("connection probability %g outside [0, 1]", tp.Prob)
		}
	case SmallWorld, Regular:
		if tp.K < 2 {
			addErr("ring neighbor count K = %d, must be at least 2", tp.K)
		} else if tp.K >= n {
			addErr("ring neighbor count K = %d, must be less than the %d units", tp.K, n)
		} else if tp.K%2 != 0 {
			warns = append(warns, fmt.Sprintf("topo: odd ring neighbor count K = %d raised to %d", tp.K, tp.K+1))
			if tp.K+1 >= n {
				addErr("ring neighbor count K = %d raised to %d, must be less than the %d units", tp.K, tp.K+1, n)
			}
		}
		if tp.Kind == SmallWorld && (tp.PRewire < 0 || tp.PRewire > 1) {
			addErr("rewiring probability %g outside [0, 1]", tp.PRewire)
		}
	case ScaleFree:
		if tp.M < 1 {
			addErr("attachment count M = %d, must be at least 1", tp.M)
		} else if tp.M >= n/2 {
			addErr("attachment count M = %d, must be less than half the %d units", tp.M, n)
		}
	case Modular:
		if tp.NModules < 2 {
			addErr("module count %d, must be at least 2", tp.NModules)
		} else if tp.NModules > n/2 {
			addErr("module count %d, must be at most half the %d units", tp.NModules, n)
		}
		if tp.PIntra < 0 || tp.PIntra > 1 {
			addErr("within-module probability %g outside [0, 1]", tp.PIntra)
		}
		if tp.PInter < 0 || tp.PInter > 1 {
			addErr("across-module probability %g outside [0, 1]", tp.PInter)
		}
		if tp.PIntra < tp.PInter {
			warns = append(warns, fmt.Sprintf("topo: within-module probability %g is below across-module probability %g -- modules will be sparser inside than between", tp.PIntra, tp.PInter))
		}
	}
	return
}

// Gen realizes a topology over n units using rnd as the only source of
// randomness.  Parameters must already have passed Validate.
func (tp *Params) Gen(n int, rnd *rand.Rand) (*Graph, error) {
	if _, errs := tp.Validate(n); len(errs) > 0 {
		return nil, errs[0]
	}
	gr := &Graph{Kind: tp.Kind}
	switch tp.Kind {
	case Random:
		tp.genRandom(gr, n, rnd)
	case SmallWorld:
		tp.genSmallWorld(gr, n, rnd)
	case ScaleFree:
		tp.genScaleFree(gr, n, rnd)
	case Regular:
		tp.genRegular(gr, n)
	case Modular:
		tp.genModular(gr, n, rnd)
	}
	return gr, nil
}

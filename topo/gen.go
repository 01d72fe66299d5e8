// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import "math/rand"

// genRandom connects each ordered pair of distinct units with probability
// Prob.  Prob = 1 realizes all n*(n-1) edges, Prob = 0 none.
func (tp *Params) genRandom(gr *Graph, n int, rnd *rand.Rand) {
	p := float64(tp.Prob)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if rnd.Float64() < p {
				gr.Edges = append(gr.Edges, Edge{Src: int32(i), Dst: int32(j)})
			}
		}
	}
}

// ringK returns the even neighbor count actually used, recording the
// adjustment on the graph when the configured K was odd.
func (tp *Params) ringK(gr *Graph) int {
	k := tp.K
	if k%2 != 0 {
		k++
		gr.KAdjusted = true
	}
	gr.KUsed = k
	return k
}

// genSmallWorld builds the K-neighbor ring and then rewires each ring edge
// with probability PRewire to a uniformly random target, rejecting
// self-loops and duplicates.  Rewiring moves edges, never adds or removes
// them, so the count stays n*K/2.
func (tp *Params) genSmallWorld(gr *Graph, n int, rnd *rand.Rand) {
	k := tp.ringK(gr)
	adj := make([][]bool, n)
	deg := make([]int, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	link := func(u, w int32, on bool) {
		adj[u][w] = on
		adj[w][u] = on
		d := 1
		if !on {
			d = -1
		}
		deg[u] += d
		deg[w] += d
	}
	for j := 1; j <= k/2; j++ {
		for i := 0; i < n; i++ {
			u, v := int32(i), int32((i+j)%n)
			gr.Edges = append(gr.Edges, Edge{Src: u, Dst: v})
			link(u, v, true)
		}
	}
	p := float64(tp.PRewire)
	for ei := range gr.Edges {
		if rnd.Float64() >= p {
			continue
		}
		u := gr.Edges[ei].Src
		if deg[u] >= n-1 {
			// already connected to everyone, nothing to rewire to
			continue
		}
		w := int32(rnd.Intn(n))
		for w == u || adj[u][w] {
			w = int32(rnd.Intn(n))
		}
		link(u, gr.Edges[ei].Dst, false)
		link(u, w, true)
		gr.Edges[ei].Dst = w
	}
}

// genScaleFree grows the network by preferential attachment: each unit
// from M onward connects to M distinct existing units sampled with
// probability proportional to their current degree.
func (tp *Params) genScaleFree(gr *Graph, n int, rnd *rand.Rand) {
	m := tp.M
	targets := make([]int32, m)
	for i := range targets {
		targets[i] = int32(i)
	}
	// every endpoint appears here once per degree, which makes uniform
	// sampling from it degree-proportional
	var repeated []int32
	for source := m; source < n; source++ {
		src := int32(source)
		for _, tg := range targets {
			gr.Edges = append(gr.Edges, Edge{Src: src, Dst: tg})
		}
		repeated = append(repeated, targets...)
		for i := 0; i < m; i++ {
			repeated = append(repeated, src)
		}
		if source+1 < n {
			targets = degreeSubset(repeated, m, rnd)
		}
	}
}

// degreeSubset samples m distinct values from seq by repeated uniform
// draws.  seq holds each unit once per degree, so the draw is
// degree-proportional.
func degreeSubset(seq []int32, m int, rnd *rand.Rand) []int32 {
	have := make(map[int32]bool, m)
	sub := make([]int32, 0, m)
	for len(sub) < m {
		x := seq[rnd.Intn(len(seq))]
		if !have[x] {
			have[x] = true
			sub = append(sub, x)
		}
	}
	return sub
}

// genRegular links each unit to its K/2 clockwise ring neighbors.
func (tp *Params) genRegular(gr *Graph, n int) {
	k := tp.ringK(gr)
	for j := 1; j <= k/2; j++ {
		for i := 0; i < n; i++ {
			gr.Edges = append(gr.Edges, Edge{Src: int32(i), Dst: int32((i + j) % n)})
		}
	}
}

// genModular assigns units to NModules blocks (first n mod NModules
// blocks get the extra unit) and connects each ordered pair of distinct
// units with PIntra inside a block, PInter across blocks.
func (tp *Params) genModular(gr *Graph, n int, rnd *rand.Rand) {
	block := make([]int, n)
	base := n / tp.NModules
	rem := n % tp.NModules
	u := 0
	for b := 0; b < tp.NModules; b++ {
		sz := base
		if b < rem {
			sz++
		}
		for i := 0; i < sz; i++ {
			block[u] = b
			u++
		}
	}
	pIntra := float64(tp.PIntra)
	pInter := float64(tp.PInter)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			p := pInter
			if block[i] == block[j] {
				p = pIntra
			}
			if rnd.Float64() < p {
				gr.Edges = append(gr.Edges, Edge{Src: int32(i), Dst: int32(j)})
			}
		}
	}
}

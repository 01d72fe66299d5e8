// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"errors"
	"testing"

	"github.com/goki/mat32"
	"github.com/snnlab/spikenet/topo"
)

// runConfig builds and runs a network from the given config, failing the
// test on any error.
func runConfig(t *testing.T, sc *SimConfig) *RunResult {
	t.Helper()
	nt := NewNetwork("test")
	nt.Config = *sc
	if err := nt.Build(); err != nil {
		t.Fatalf("build err: %v", err)
	}
	res, err := nt.Run()
	if err != nil {
		t.Fatalf("run err: %v", err)
	}
	return res
}

func TestRunTraceLengths(t *testing.T) {
	for mk := LIF; mk < Custom; mk++ {
		sc := SimConfig{}
		sc.Defaults()
		sc.Model = mk
		sc.N = 3
		sc.Seed = 1
		if mk == AdEx {
			sc.Stim.Current = 250
			sc.Stim.PerUnit = 5
		}
		res := runConfig(t, &sc)
		steps := sc.Steps()
		if res.Steps != steps {
			t.Errorf("%v: steps %d != %d", mk, res.Steps, steps)
		}
		for vn, tr := range res.Traces {
			if tr.Dim(0) != sc.N || tr.Dim(1) != steps+1 {
				t.Errorf("%v: trace %s shape [%d, %d] != [%d, %d]", mk, vn, tr.Dim(0), tr.Dim(1), sc.N, steps+1)
			}
		}
		last := 0
		for _, se := range res.Spikes {
			if se.Step < last {
				t.Fatalf("%v: spike log steps decrease: %d after %d", mk, se.Step, last)
			}
			last = se.Step
		}
	}
}

func TestRunLIFAnalytic(t *testing.T) {
	sc := SimConfig{}
	sc.Defaults()
	sc.Model = LIF
	sc.N = 1
	sc.Seed = 1
	sc.Stim.Current = 1.2
	sc.Stim.PerUnit = 0
	sc.Stim.StartMS = 0
	sc.Stim.DurMS = 100

	res := runConfig(t, &sc)

	// below threshold the trace must follow 1.2 (1 - e^{-t/10ms}) exactly
	// (exact integrator); v(10ms) = 0.758 is still well below the 1.0
	// threshold, so the first 100 steps are spike-free
	tr := res.Traces["v"]
	for ti := 0; ti <= 100; ti++ {
		cor := 1.2 * (1 - mat32.Exp(-float32(ti)*sc.DtMS/10))
		v := tr.Value([]int{0, ti})
		// 1e-4: repeated per-step rounding accumulates over 100 steps
		if dif := mat32.Abs(v - cor); dif > 1.0e-4 {
			t.Fatalf("step %d: v %v != analytic %v (dif %v)", ti, v, cor, dif)
		}
	}

	// periodic spiking: crossing time from v=0 is -10 ln(1 - 1/1.2) =
	// 17.9 ms, so 100 ms holds 5 spikes
	if res.NSpikes() != 5 {
		t.Errorf("spike count %d != 5", res.NSpikes())
	}
	for i := 1; i < len(res.Spikes); i++ {
		isi := res.Spikes[i].Step - res.Spikes[i-1].Step
		if isi < 178 || isi > 181 {
			t.Errorf("inter-spike interval %d steps outside [178, 181]", isi)
		}
	}

	// reset lands exactly on VmR on the step after each spike
	for _, se := range res.Spikes {
		if v := tr.Value([]int{0, se.Step}); v != sc.LIF.VmR {
			t.Errorf("step %d: post-spike v %v != reset %v", se.Step, v, sc.LIF.VmR)
		}
	}
}

func TestRunDeterminism(t *testing.T) {
	run := func(seed int64, threads int) *RunResult {
		sc := SimConfig{}
		sc.Defaults()
		sc.Model = Izhikevich
		sc.N = 20
		sc.Seed = seed
		sc.Threads = threads
		sc.Stim.Current = 10
		sc.Stim.Noise.Type = AddNoise
		sc.Stim.Noise.Var = 0.5
		sc.Coupling.On = true
		sc.Coupling.Wt = 0.5
		sc.Topo.Kind = topo.Random
		sc.Topo.Prob = 0.2
		return runConfig(t, &sc)
	}
	a := run(17, 1)
	b := run(17, 1)
	c := run(18, 1)
	par := run(17, 4)

	sameSpikes := func(x, y *RunResult) bool {
		if len(x.Spikes) != len(y.Spikes) {
			return false
		}
		for i := range x.Spikes {
			if x.Spikes[i] != y.Spikes[i] {
				return false
			}
		}
		return true
	}
	sameTraces := func(x, y *RunResult) bool {
		for vn, xt := range x.Traces {
			yt := y.Traces[vn]
			for i := range xt.Values {
				if xt.Values[i] != yt.Values[i] {
					return false
				}
			}
		}
		return true
	}

	if !sameSpikes(a, b) || !sameTraces(a, b) {
		t.Errorf("same seed should give bit-identical results")
	}
	if !sameSpikes(a, par) || !sameTraces(a, par) {
		t.Errorf("thread count should not change results")
	}
	if len(a.Graph.Edges) != len(b.Graph.Edges) {
		t.Errorf("same seed should realize the same topology")
	}
	if sameSpikes(a, c) && sameTraces(a, c) {
		t.Errorf("different seeds should diverge under noise")
	}
}

func TestRunNumericalAbort(t *testing.T) {
	sc := SimConfig{}
	sc.Defaults()
	sc.Model = Custom
	sc.N = 2
	sc.Seed = 1
	sc.Custom.Eqs = "dv/dt = v*v + 1"
	sc.Custom.Thr = "v > 1e38"
	sc.Custom.Rst = "v = 0"
	sc.Stim.Current = 0

	nt := NewNetwork("test")
	nt.Config = sc
	if err := nt.Build(); err != nil {
		t.Fatalf("build err: %v", err)
	}
	_, err := nt.Run()
	if err == nil {
		t.Fatalf("diverging state should abort the run")
	}
	var ne *NumericalError
	if !errors.As(err, &ne) {
		t.Fatalf("error should be *NumericalError, got %T: %v", err, err)
	}
	if ne.Step <= 0 || ne.Step > sc.Steps() {
		t.Errorf("offending step %d out of range", ne.Step)
	}
	if ne.Var != "v" {
		t.Errorf("offending var %q != v", ne.Var)
	}
}

func TestRunSynapticDelivery(t *testing.T) {
	sc := SimConfig{}
	sc.Defaults()
	sc.Model = LIF
	sc.N = 2
	sc.Seed = 3
	// unit 0 saturates at 0.95, below threshold; unit 1 at 1.01 crosses
	// on its own after ~46 ms
	sc.Stim.Current = 0.95
	sc.Stim.PerUnit = 0.06
	sc.Stim.StartMS = 0
	sc.Stim.DurMS = 100
	sc.Coupling.On = false

	res := runConfig(t, &sc)
	cnt := res.UnitSpikes()
	if cnt[0] != 0 {
		t.Fatalf("uncoupled unit 0 should stay silent, got %d spikes", cnt[0])
	}
	if cnt[1] == 0 {
		t.Fatalf("unit 1 should spike from its drive")
	}

	// with full coupling, unit 1's spike is delivered to unit 0 one ms
	// later, pushing it over threshold
	sc.Coupling.On = true
	sc.Coupling.Wt = 0.5
	sc.Topo.Kind = topo.Random
	sc.Topo.Prob = 1

	res = runConfig(t, &sc)
	cnt = res.UnitSpikes()
	if cnt[0] == 0 {
		t.Fatalf("coupled unit 0 should be driven past threshold by unit 1")
	}
	firstSrc := 0
	for _, se := range res.Spikes {
		if se.Unit == 1 {
			firstSrc = se.Step
			break
		}
	}
	first0 := 0
	for _, se := range res.Spikes {
		if se.Unit == 0 {
			first0 = se.Step
			break
		}
	}
	delay := sc.Coupling.DelaySteps(sc.DtMS)
	if first0 < firstSrc+delay {
		t.Errorf("unit 0 spiked at step %d, before the step-%d delivery from unit 1", first0, firstSrc+delay)
	}
}

func TestRunRequiresBuild(t *testing.T) {
	nt := NewNetwork("test")
	if _, err := nt.Run(); err == nil {
		t.Errorf("Run before Build should error")
	}

	nt.Config.Seed = 1
	if err := nt.Build(); err != nil {
		t.Fatalf("build err: %v", err)
	}
	if _, err := nt.Run(); err != nil {
		t.Fatalf("run err: %v", err)
	}
	// a second Run without a fresh Build must be refused, not corrupt
	if _, err := nt.Run(); err == nil {
		t.Errorf("re-Run without Build should error")
	}
}

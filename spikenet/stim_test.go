// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"math/rand"
	"testing"

	"github.com/goki/mat32"
)

func TestStimWindow(t *testing.T) {
	sp := StimParams{}
	sp.Defaults()
	sp.Current = 1.2
	sp.StartMS = 10
	sp.DurMS = 50

	n := 4
	steps := 1000 // 100 ms at 0.1 ms
	dt := float32(0.1)
	stim := sp.Build(n, steps, dt, rand.New(rand.NewSource(1)))

	if stim.Dim(0) != n || stim.Dim(1) != steps+1 {
		t.Fatalf("shape: [%d, %d] != [%d, %d]", stim.Dim(0), stim.Dim(1), n, steps+1)
	}
	si := int(sp.StartMS / dt)
	ei := int((sp.StartMS + sp.DurMS) / dt)
	for ui := 0; ui < n; ui++ {
		cor := sp.Current + sp.PerUnit*float32(ui)
		for ti := 0; ti <= steps; ti++ {
			v := stim.Value([]int{ui, ti})
			if ti >= si && ti < ei {
				if dif := mat32.Abs(v - cor); dif > difTol {
					t.Fatalf("unit %d step %d: %v != %v", ui, ti, v, cor)
				}
			} else if v != 0 {
				t.Fatalf("unit %d step %d: %v != 0 outside window", ui, ti, v)
			}
		}
	}
}

func TestStimNoiseDeterminism(t *testing.T) {
	sp := StimParams{}
	sp.Defaults()
	sp.Noise.Type = AddNoise
	sp.Noise.Var = 0.2

	a := sp.Build(3, 100, 0.1, rand.New(rand.NewSource(7)))
	b := sp.Build(3, 100, 0.1, rand.New(rand.NewSource(7)))
	c := sp.Build(3, 100, 0.1, rand.New(rand.NewSource(8)))

	difAB := false
	difAC := false
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			difAB = true
		}
		if a.Values[i] != c.Values[i] {
			difAC = true
		}
	}
	if difAB {
		t.Errorf("same seed should give identical noisy stimulus")
	}
	if !difAC {
		t.Errorf("different seeds should give different noisy stimulus")
	}
}

func TestStimMultNoiseZeroOutside(t *testing.T) {
	sp := StimParams{}
	sp.Defaults()
	sp.Noise.Type = MultNoise
	sp.Noise.Var = 0.5

	steps := 500
	stim := sp.Build(2, steps, 0.1, rand.New(rand.NewSource(3)))
	// multiplicative noise cannot create current where there is none
	ei := int((sp.StartMS + sp.DurMS) / 0.1)
	for ui := 0; ui < 2; ui++ {
		for ti := ei; ti <= steps; ti++ {
			if v := stim.Value([]int{ui, ti}); v != 0 {
				t.Fatalf("unit %d step %d: multiplicative noise produced %v outside the window", ui, ti, v)
			}
		}
	}
}

func TestStimValidate(t *testing.T) {
	sp := StimParams{}
	sp.Defaults()
	sp.StartMS = 80
	sp.DurMS = 50
	errs := &ConfigErrs{}
	sp.Validate(100, errs)
	if len(errs.Errs) != 1 {
		t.Errorf("window past sim end should be 1 problem, got %v", errs.Errs)
	}
}

// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func smallResult(t *testing.T) *RunResult {
	t.Helper()
	sc := SimConfig{}
	sc.Defaults()
	sc.N = 3
	sc.SimTimeMS = 50
	sc.Stim.StartMS = 0
	sc.Stim.DurMS = 50
	sc.Seed = 2
	return runConfig(t, &sc)
}

func TestTraceTable(t *testing.T) {
	res := smallResult(t)
	dt := res.TraceTable()
	if dt.Rows != res.Steps+1 {
		t.Errorf("rows %d != %d", dt.Rows, res.Steps+1)
	}
	if dt.NumCols() != res.N+1 {
		t.Errorf("cols %d != %d", dt.NumCols(), res.N+1)
	}
	// time axis is step * dt
	if tm := dt.CellFloat("Time(ms)", 10); tm != float64(float32(10)*res.DtMS) {
		t.Errorf("time at row 10: %v", tm)
	}
	// table cells mirror the trace tensor
	v := res.Traces[res.MemVar].Value([]int{1, 5})
	if cv := dt.CellFloat("Neuron_1", 5); cv != float64(v) {
		t.Errorf("cell (1, 5): %v != trace %v", cv, v)
	}
}

func TestSpikeTable(t *testing.T) {
	res := smallResult(t)
	dt := res.SpikeTable()
	if dt.Rows != res.NSpikes() {
		t.Errorf("rows %d != %d spikes", dt.Rows, res.NSpikes())
	}
	if res.NSpikes() > 0 {
		se := res.Spikes[0]
		if st := dt.CellFloat("Step", 0); int(st) != se.Step {
			t.Errorf("step col: %v != %d", st, se.Step)
		}
		if un := dt.CellFloat("Unit", 0); int32(un) != se.Unit {
			t.Errorf("unit col: %v != %d", un, se.Unit)
		}
	}
}

func TestSaveTraceCSV(t *testing.T) {
	res := smallResult(t)
	var b bytes.Buffer
	if err := res.SaveTraceCSV(&b); err != nil {
		t.Fatalf("csv err: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != res.Steps+2 { // header + steps+1 rows
		t.Errorf("csv lines %d != %d", len(lines), res.Steps+2)
	}
	if !strings.Contains(lines[0], "Time(ms)") || !strings.Contains(lines[0], "Neuron_0") {
		t.Errorf("csv header missing columns: %s", lines[0])
	}
}

func TestSaveTraceJSON(t *testing.T) {
	res := smallResult(t)
	var b bytes.Buffer
	if err := res.SaveTraceJSON(&b); err != nil {
		t.Fatalf("json err: %v", err)
	}
	var tj struct {
		TimeMS  []float32            `json:"time_ms"`
		Neurons map[string][]float32 `json:"neurons"`
		Unit    string               `json:"unit"`
	}
	if err := json.Unmarshal(b.Bytes(), &tj); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(tj.TimeMS) != res.Steps+1 {
		t.Errorf("time axis %d != %d", len(tj.TimeMS), res.Steps+1)
	}
	if len(tj.Neurons) != res.N {
		t.Errorf("series %d != %d units", len(tj.Neurons), res.N)
	}
	if _, ok := tj.Neurons["Neuron_0"]; !ok {
		t.Errorf("missing Neuron_0 series")
	}
	if tj.Unit != "1" {
		t.Errorf("unit %q != 1 for dimensionless LIF", tj.Unit)
	}
}

func TestUnitSpikes(t *testing.T) {
	res := smallResult(t)
	cnt := res.UnitSpikes()
	tot := 0
	for _, c := range cnt {
		tot += c
	}
	if tot != res.NSpikes() {
		t.Errorf("per-unit counts sum %d != %d total", tot, res.NSpikes())
	}
}

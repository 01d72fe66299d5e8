// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/snnlab/spikenet/topo"
)

// RunResult is everything one run produced: the per-variable state
// traces, the spike log, the realized topology, and the wall-clock
// duration.  It is immutable once returned; the next Build / Run cycle
// allocates fresh storage and never touches a returned result.
type RunResult struct {

	// recorded traces, one [N, Steps+1] tensor per model variable
	Traces map[string]*etensor.Float32

	// spike events ordered by (step, unit)
	Spikes []SpikeEvent

	// realized topology, nil when coupling was off
	Graph *topo.Graph

	// non-fatal configuration warnings attached to this run
	Warnings []string

	// number of units
	N int

	// number of integration steps (trace length is Steps+1)
	Steps int

	// integration step size in ms
	DtMS float32

	// model state variable names, in state vector order
	VarNames []string

	// name of the membrane potential variable (first state variable)
	MemVar string

	// physical unit of the membrane variable: mV for AdEx, 1 otherwise
	MemUnit string

	// wall-clock duration of the integration loop in seconds
	WallSecs float64
}

// NSpikes returns the total number of spike events.
func (rr *RunResult) NSpikes() int {
	return len(rr.Spikes)
}

// UnitSpikes returns per-unit spike counts.
func (rr *RunResult) UnitSpikes() []int {
	cnt := make([]int, rr.N)
	for _, se := range rr.Spikes {
		cnt[se.Unit]++
	}
	return cnt
}

// Trace returns the recorded trace tensor for the named variable.
func (rr *RunResult) Trace(vn string) (*etensor.Float32, error) {
	tr, ok := rr.Traces[vn]
	if !ok {
		return nil, fmt.Errorf("spikenet: no trace for variable %q", vn)
	}
	return tr, nil
}

// TraceVal returns one recorded value: variable vn of unit ui at step t.
func (rr *RunResult) TraceVal(vn string, ui, t int) (float32, error) {
	tr, err := rr.Trace(vn)
	if err != nil {
		return 0, err
	}
	return tr.Value([]int{ui, t}), nil
}

// TraceTable returns the membrane trace as a table with a Time(ms)
// column followed by one column per unit (Neuron_0, Neuron_1, ...).
func (rr *RunResult) TraceTable() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "StateTrace")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time(ms)", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	for ui := 0; ui < rr.N; ui++ {
		sch = append(sch, etable.Column{Name: fmt.Sprintf("Neuron_%d", ui), Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
	}
	dt.SetFromSchema(sch, rr.Steps+1)
	tr := rr.Traces[rr.MemVar]
	ntime := rr.Steps + 1
	for t := 0; t < ntime; t++ {
		dt.SetCellFloat("Time(ms)", t, float64(float32(t)*rr.DtMS))
		for ui := 0; ui < rr.N; ui++ {
			dt.SetCellFloat(fmt.Sprintf("Neuron_%d", ui), t, float64(tr.Values[ui*ntime+t]))
		}
	}
	return dt
}

// SpikeTable returns the spike log as a table with Step, Time(ms) and
// Unit columns.
func (rr *RunResult) SpikeTable() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "SpikeLog")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Step", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Time(ms)", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Unit", Type: etensor.INT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(rr.Spikes))
	for i, se := range rr.Spikes {
		dt.SetCellFloat("Step", i, float64(se.Step))
		dt.SetCellFloat("Time(ms)", i, float64(se.TimeMS(rr.DtMS)))
		dt.SetCellFloat("Unit", i, float64(se.Unit))
	}
	return dt
}

// SaveTraceCSV writes the membrane trace table to w as comma-separated
// values with a header row.
func (rr *RunResult) SaveTraceCSV(w io.Writer) error {
	return rr.TraceTable().WriteCSV(w, etable.Comma, etable.Headers)
}

// SaveSpikesCSV writes the spike table to w as comma-separated values
// with a header row.
func (rr *RunResult) SaveSpikesCSV(w io.Writer) error {
	return rr.SpikeTable().WriteCSV(w, etable.Comma, etable.Headers)
}

// traceJSON is the JSON export schema for the membrane trace.
type traceJSON struct {
	TimeMS  []float32            `json:"time_ms"`
	Neurons map[string][]float32 `json:"neurons"`
	Unit    string               `json:"unit"`
}

// SaveTraceJSON writes the membrane trace to w as JSON: the shared time
// axis, one series per unit keyed Neuron_<i>, and the physical unit of
// the values.
func (rr *RunResult) SaveTraceJSON(w io.Writer) error {
	ntime := rr.Steps + 1
	tj := traceJSON{
		TimeMS:  make([]float32, ntime),
		Neurons: make(map[string][]float32, rr.N),
		Unit:    rr.MemUnit,
	}
	for t := 0; t < ntime; t++ {
		tj.TimeMS[t] = float32(t) * rr.DtMS
	}
	tr := rr.Traces[rr.MemVar]
	for ui := 0; ui < rr.N; ui++ {
		row := make([]float32, ntime)
		copy(row, tr.Values[ui*ntime:(ui+1)*ntime])
		tj.Neurons[fmt.Sprintf("Neuron_%d", ui)] = row
	}
	return json.NewEncoder(w).Encode(&tj)
}

// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikenet is the overall repository for the spikenet spiking
point-neuron network simulator, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* spikenet: the core implementation: neuron models (LIF, Izhikevich,
AdEx, and compiled custom equations), stimulus construction, delayed
synaptic coupling, the forward-Euler stepping loop, and state / spike
recording into etable tables.

* topo: the network topology generators (random, small-world,
scale-free, regular ring lattice, and modular), all operating directly
on integer edge lists with a caller-supplied random source, so realized
graphs are reproducible from a seed.

* eqn: the restricted equation compiler used by custom neuron models --
arithmetic, exp and pow over declared state variables, compiled once
into closed evaluators before a run starts.

* examples: runnable programs. examples/pulse drives a small network
through a current pulse and writes the voltage traces to CSV.
*/
package spikenet

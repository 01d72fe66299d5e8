// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikenet

import (
	"fmt"
	"strings"
)

// ConfigErrs collects every configuration problem found during validation,
// so the caller sees the complete list at once instead of fixing one
// problem per attempt.  The zero value is ready to use.
type ConfigErrs struct {
	Errs []error
}

// Add appends one problem.  nil is ignored.
func (ce *ConfigErrs) Add(err error) {
	if err != nil {
		ce.Errs = append(ce.Errs, err)
	}
}

// Addf appends one formatted problem.
func (ce *ConfigErrs) Addf(format string, args ...any) {
	ce.Errs = append(ce.Errs, fmt.Errorf(format, args...))
}

// Err returns nil when no problems were collected, else the collection
// itself as an error.
func (ce *ConfigErrs) Err() error {
	if len(ce.Errs) == 0 {
		return nil
	}
	return ce
}

func (ce *ConfigErrs) Error() string {
	msgs := make([]string, len(ce.Errs))
	for i, err := range ce.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("spikenet: %d configuration problems: %s", len(ce.Errs), strings.Join(msgs, "; "))
}

// Unwrap supports errors.Is / errors.As over the collected problems.
func (ce *ConfigErrs) Unwrap() []error {
	return ce.Errs
}

// NumericalError reports a non-finite (NaN or Inf) state value.  The run
// aborts at the step that produced it.
type NumericalError struct {
	Step int
	Unit int32
	Var  string
	Val  float32
}

func (ne *NumericalError) Error() string {
	return fmt.Sprintf("spikenet: non-finite value %g in variable %s of unit %d at step %d", ne.Val, ne.Var, ne.Unit, ne.Step)
}

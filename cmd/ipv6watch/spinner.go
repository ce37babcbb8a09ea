// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner.

package main

// spinner is yet another blindingly simple spinner; just enough to get the
// job done, no bells, no frills. The phase simply advances on every render,
// so no background ticker is needed.
type spinner struct {
	phases []string
	phase  int
}

// newSpinner returns a new spinner.
func newSpinner() *spinner {
	phases := []string{}
	for _, r := range "⠉⠘⠰⠤⠆⠃" {
		phases = append(phases, string(r)+" ")
	}
	return &spinner{phases: phases}
}

// Next returns the spinner string for the current phase and advances to the
// next one.
func (s *spinner) Next() string {
	phase := s.phases[s.phase]
	s.phase = (s.phase + 1) % len(s.phases)
	return phase
}

// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/json"
	"fmt"
)

// Presence is the outcome of checking a single DNS address family: not yet
// resolved, resolved as absent, or resolved as present.
type Presence int

// The resolution states of an address family.
const (
	Unknown Presence = iota // not yet resolved.
	Absent                  // resolved, no (genuine) address found.
	Present                 // resolved, at least one genuine address found.
)

// String returns the clear-text representation of a Presence value.
func (p Presence) String() string {
	switch p {
	case Unknown:
		return "unknown"
	case Absent:
		return "absent"
	case Present:
		return "present"
	}
	return fmt.Sprintf("Presence(%d)", int(p))
}

// Known returns true after the corresponding resolution has completed, that
// is, for both Absent and Present.
func (p Presence) Known() bool {
	return p != Unknown
}

// FromBool maps a definite resolution outcome onto a Presence value.
func FromBool(present bool) Presence {
	if present {
		return Present
	}
	return Absent
}

// And returns the three-valued conjunction of two Presence values: Absent
// dominates, then Unknown, and only Present∧Present is Present. Unknown thus
// never silently degrades into a definite "absent" verdict.
func (p Presence) And(other Presence) Presence {
	if p == Absent || other == Absent {
		return Absent
	}
	if p == Unknown || other == Unknown {
		return Unknown
	}
	return Present
}

// MarshalJSON serializes a Presence as a nullable boolean: null while
// unknown, otherwise true or false.
func (p Presence) MarshalJSON() ([]byte, error) {
	switch p {
	case Unknown:
		return []byte("null"), nil
	case Absent:
		return []byte("false"), nil
	case Present:
		return []byte("true"), nil
	}
	return nil, fmt.Errorf("cannot marshal %s", p)
}

// UnmarshalJSON deserializes a nullable boolean into a Presence.
func (p *Presence) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("cannot unmarshal Presence: %w", err)
	}
	if b == nil {
		*p = Unknown
		return nil
	}
	*p = FromBool(*b)
	return nil
}

// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

// Package countrynames resolves ISO 3166-1 alpha-2 country codes into
// human-readable country names, backed by the country database of
// [github.com/biter777/countries].
package countrynames

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biter777/countries"
)

// TestCode is the reserved sentinel country code used by validation
// fixtures; it maps to a fixed literal name instead of a real lookup.
const TestCode = "xx"

// testName is the fixed name of the TestCode sentinel.
const testName = "Validation Test"

// ErrUnknownCountry is returned for country codes that are neither a known
// ISO 3166-1 alpha-2 code nor the TestCode sentinel.
var ErrUnknownCountry = errors.New("unknown country code")

// Name returns the human-readable country name for an ISO 3166-1 alpha-2
// code, or an error wrapping [ErrUnknownCountry] if the code is
// unrecognized.
func Name(code string) (string, error) {
	if strings.EqualFold(code, TestCode) {
		return testName, nil
	}
	country := countries.ByName(strings.ToUpper(code))
	if country == countries.Unknown {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return country.String(), nil
}

// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import "fmt"

// EntityRecord is one raw catalog record describing an organization whose
// IPv6 readiness is to be assessed. Records are accepted both from JSON and
// YAML catalogs.
type EntityRecord struct {
	Country         string   `json:"country" yaml:"country"`
	Category        string   `json:"category" yaml:"category"`
	Name            string   `json:"name,omitempty" yaml:"name,omitempty"`
	MainHost        string   `json:"main_host" yaml:"main_host"`
	AdditionalHosts []string `json:"additional_hosts,omitempty" yaml:"additional_hosts,omitempty"`
}

// validate fails fast on structurally broken records, so malformed catalogs
// never make it into the resolution phase.
func (r EntityRecord) validate() error {
	if r.Country == "" {
		return fmt.Errorf("catalog record %q: missing country", r.Name)
	}
	if r.Category == "" {
		return fmt.Errorf("catalog record %q: missing category", r.Name)
	}
	if r.MainHost == "" {
		return fmt.Errorf("catalog record %q (%s/%s): missing main_host",
			r.Name, r.Country, r.Category)
	}
	for _, host := range r.AdditionalHosts {
		if host == "" {
			return fmt.Errorf("catalog record %q (%s/%s): empty additional host name",
				r.Name, r.Country, r.Category)
		}
	}
	return nil
}

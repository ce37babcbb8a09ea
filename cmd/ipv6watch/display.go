// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/ipv6watch/ipv6watch/census"
)

// renderer renders the terminal display: a one-line progress indicator
// while the census tree is resolving, and the per-country readiness summary
// afterwards.
type renderer struct {
	w       io.Writer
	total   int
	spinner *spinner
}

// newRenderer returns a renderer writing to the specified io.Writer for a
// run over the given total number of entities.
func newRenderer(w io.Writer, total int) *renderer {
	return &renderer{
		w:       w,
		total:   total,
		spinner: newSpinner(),
	}
}

// RenderProgress renders the resolution progress line.
func (r *renderer) RenderProgress(resolved int) {
	if resolved >= r.total {
		fmt.Fprintf(r.w, "✔ resolved %d entities\n", r.total)
		return
	}
	fmt.Fprintf(r.w, "%sresolving entities... %d/%d\n",
		r.spinner.Next(), resolved, r.total)
}

// RenderSummary renders the readiness summary of the resolved tree, one
// block per country with one line per category, colorized by readiness
// ratio.
func (r *renderer) RenderSummary(source *census.Source) {
	for _, code := range sortedKeys(source.Countries) {
		country := source.Countries[code]
		name, err := country.CountryName()
		if err != nil {
			// unrecognized code: fall back to the raw code rather than
			// dropping the country from the summary.
			name = code
		}
		fmt.Fprintf(r.w, "%s\n", countryNameStyle.Styled(name))
		for _, tag := range sortedKeys(country.Categories) {
			category := country.Categories[tag]
			pct, err := category.ReadyPercentage()
			if err != nil {
				fmt.Fprintf(r.w, "   %s: no entities\n", tag)
				continue
			}
			ready := category.ReadyCount()
			total := category.TotalCount()
			style := partiallyReadyStyle
			switch ready {
			case total:
				style = readyStyle
			case 0:
				style = notReadyStyle
			}
			fmt.Fprintf(r.w, "   %s: %s\n",
				tag, style.Styled(fmt.Sprintf("%d/%d IPv6 ready (%s)", ready, total, pct)))
		}
	}
}

// sortedKeys returns the sorted keys of a string-keyed map; map iteration
// order would make the summary jitter between runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

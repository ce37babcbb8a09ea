// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"encoding/json"

	"github.com/ipv6watch/ipv6watch/countrynames"
)

// CountryData groups categories under one ISO 3166-1 alpha-2 country code.
// Categories are created lazily on first registration and never removed.
type CountryData struct {
	Code       string
	Categories map[string]*Category
}

// NewCountryData returns an empty CountryData for the specified country
// code.
func NewCountryData(code string) *CountryData {
	return &CountryData{
		Code:       code,
		Categories: map[string]*Category{},
	}
}

// Register files an entity under its category, creating the category on
// first use.
func (cd *CountryData) Register(entity *Entity) {
	category, ok := cd.Categories[entity.Category]
	if !ok {
		category = NewCategory(entity.Category)
		cd.Categories[entity.Category] = category
	}
	category.Register(entity)
}

// CountryName returns the human-readable name for this country's code. It
// fails with [countrynames.ErrUnknownCountry] for unrecognized codes,
// except for the reserved "xx" validation sentinel.
func (cd *CountryData) CountryName() (string, error) {
	return countrynames.Name(cd.Code)
}

// MarshalJSON serializes a country as the mapping of category tags to their
// entity report sequences.
func (cd *CountryData) MarshalJSON() ([]byte, error) {
	return json.Marshal(cd.Categories)
}

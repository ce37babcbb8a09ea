// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ipv6watch/ipv6watch/types"
)

// ErrNoEntities is returned when a readiness ratio is requested for a
// category without any registered entities; the ratio would be undefined.
var ErrNoEntities = errors.New("category has no registered entities")

// Category groups the entities sharing a category tag within one country
// and computes readiness ratios over them. The entity sequence is
// append-only and preserves registration order.
type Category struct {
	Tag      string
	Entities []*Entity
}

// NewCategory returns an empty Category for the specified tag.
func NewCategory(tag string) *Category {
	return &Category{Tag: tag}
}

// Register appends an entity to this category. No duplicate detection takes
// place; the catalog is trusted on this.
func (c *Category) Register(entity *Entity) {
	c.Entities = append(c.Entities, entity)
}

// ReadyCount returns the number of registered entities judged IPv6 ready.
func (c *Category) ReadyCount() int {
	count := 0
	for _, entity := range c.Entities {
		if entity.IPv6Ready == types.Present {
			count++
		}
	}
	return count
}

// TotalCount returns the number of registered entities.
func (c *Category) TotalCount() int {
	return len(c.Entities)
}

// ReadyPercentage returns the ready-to-total ratio formatted as an integer
// percentage, such as "67%". It fails with an error wrapping
// [ErrNoEntities] when no entities are registered, instead of faulting on
// the undefined ratio.
func (c *Category) ReadyPercentage() (string, error) {
	total := c.TotalCount()
	if total == 0 {
		return "", fmt.Errorf("category %q: %w", c.Tag, ErrNoEntities)
	}
	ratio := float64(c.ReadyCount()) / float64(total)
	return fmt.Sprintf("%.0f%%", ratio*100), nil
}

// MarshalJSON serializes a category as the plain sequence of its entity
// reports.
func (c *Category) MarshalJSON() ([]byte, error) {
	entities := c.Entities
	if entities == nil {
		entities = []*Entity{}
	}
	return json.Marshal(entities)
}

// Package catalog loads the hand-edited reference data: mountains, equipment,
// equipment templates and plans.
package catalog

import (
	"fmt"

	"github.com/vbonduro/trailplan/internal/domain"
)

// Catalog is an immutable, indexed snapshot of the fixture files. Slices keep
// file order; lookups return nil on a miss.
type Catalog struct {
	mountains []domain.Mountain
	equipment []domain.EquipmentItem
	templates []domain.EquipmentTemplate
	plans     []domain.Plan

	mountainIdx  map[string]int
	equipmentIdx map[string]int
	templateIdx  map[string]int
	planIdx      map[string]int
}

// New indexes the records. Ids must be unique within each kind.
func New(mountains []domain.Mountain, equipment []domain.EquipmentItem, templates []domain.EquipmentTemplate, plans []domain.Plan) (*Catalog, error) {
	c := &Catalog{
		mountains: mountains,
		equipment: equipment,
		templates: templates,
		plans:     plans,
	}

	var err error
	if c.mountainIdx, err = index("mountain", mountains, func(m domain.Mountain) string { return m.ID }); err != nil {
		return nil, err
	}
	if c.equipmentIdx, err = index("equipment", equipment, func(e domain.EquipmentItem) string { return e.ID }); err != nil {
		return nil, err
	}
	if c.templateIdx, err = index("template", templates, func(t domain.EquipmentTemplate) string { return t.ID }); err != nil {
		return nil, err
	}
	if c.planIdx, err = index("plan", plans, func(p domain.Plan) string { return p.ID }); err != nil {
		return nil, err
	}
	return c, nil
}

// Empty returns a catalog with no records.
func Empty() *Catalog {
	c, _ := New(nil, nil, nil, nil)
	return c
}

func index[T any](kind string, records []T, id func(T) string) (map[string]int, error) {
	idx := make(map[string]int, len(records))
	for i, r := range records {
		key := id(r)
		if key == "" {
			return nil, fmt.Errorf("%s at position %d has no id", kind, i)
		}
		if _, dup := idx[key]; dup {
			return nil, fmt.Errorf("duplicate %s id %q", kind, key)
		}
		idx[key] = i
	}
	return idx, nil
}

func (c *Catalog) Mountains() []domain.Mountain {
	return c.mountains
}

func (c *Catalog) Mountain(id string) *domain.Mountain {
	i, ok := c.mountainIdx[id]
	if !ok {
		return nil
	}
	m := c.mountains[i]
	return &m
}

// Equipment returns every equipment item in catalog order.
func (c *Catalog) Equipment() []domain.EquipmentItem {
	return c.equipment
}

func (c *Catalog) EquipmentItem(id string) *domain.EquipmentItem {
	i, ok := c.equipmentIdx[id]
	if !ok {
		return nil
	}
	e := c.equipment[i]
	return &e
}

func (c *Catalog) Templates() []domain.EquipmentTemplate {
	return c.templates
}

func (c *Catalog) Template(id string) *domain.EquipmentTemplate {
	i, ok := c.templateIdx[id]
	if !ok {
		return nil
	}
	t := c.templates[i]
	return &t
}

// Plans returns the plans in file order.
func (c *Catalog) Plans() []domain.Plan {
	return c.plans
}

func (c *Catalog) Plan(id string) *domain.Plan {
	i, ok := c.planIdx[id]
	if !ok {
		return nil
	}
	p := c.plans[i]
	return &p
}

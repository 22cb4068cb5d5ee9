// Package checklist derives the grouped, filterable equipment checklist for a
// plan or template and computes packing progress. Every function here is pure;
// persistence of State is the caller's job.
package checklist

import (
	"math"
	"slices"

	"github.com/vbonduro/trailplan/internal/domain"
)

// StorageKey is the fixed key CheckState is persisted under.
const StorageKey = "equipment-checked"

// Lookup is the subset of the reference catalog the engine reads.
type Lookup interface {
	// Equipment returns the full catalog in catalog order.
	Equipment() []domain.EquipmentItem
	// Template returns nil when no template has the id.
	Template(id string) *domain.EquipmentTemplate
}

type sourceKind int

const (
	sourceIDs sourceKind = iota
	sourceAll
	sourceTemplate
)

// Source selects a candidate set of equipment.
type Source struct {
	kind       sourceKind
	ids        []string
	templateID string
}

// IDs selects the items with the given ids, such as a plan's equipment list.
func IDs(ids ...string) Source {
	return Source{kind: sourceIDs, ids: ids}
}

// All selects the full catalog.
func All() Source {
	return Source{kind: sourceAll}
}

// Template selects the items a template recommends.
func Template(id string) Source {
	return Source{kind: sourceTemplate, templateID: id}
}

// Resolve returns the candidate set for src in catalog order. Ids with no
// matching item, and unknown templates, are silently dropped.
func Resolve(cat Lookup, src Source) []domain.EquipmentItem {
	all := cat.Equipment()

	var ids []string
	switch src.kind {
	case sourceAll:
		return slices.Clone(all)
	case sourceTemplate:
		tpl := cat.Template(src.templateID)
		if tpl == nil {
			return []domain.EquipmentItem{}
		}
		ids = tpl.Items
	case sourceIDs:
		ids = src.ids
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make([]domain.EquipmentItem, 0, len(wanted))
	for _, item := range all {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Filter returns the items matching pred, in their original order.
func Filter(items []domain.EquipmentItem, pred func(domain.EquipmentItem) bool) []domain.EquipmentItem {
	out := make([]domain.EquipmentItem, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// WinterOnly keeps winter gear.
func WinterOnly(item domain.EquipmentItem) bool {
	return item.ForWinter
}

// CategoryGroup is the items of one category, required items first.
type CategoryGroup struct {
	Category domain.Category
	Items    []domain.EquipmentItem
}

func (g CategoryGroup) Progress(s State) Progress {
	return ComputeProgress(g.Items, s)
}

// Grouped is the output of Group: non-empty categories in display order.
type Grouped []CategoryGroup

// Lookup returns the items of c, or nil if c has no items.
func (g Grouped) Lookup(c domain.Category) []domain.EquipmentItem {
	for _, group := range g {
		if group.Category == c {
			return group.Items
		}
	}
	return nil
}

// Group partitions items by category in the fixed display order. Within a
// category required items come first; ties keep their input order. Items
// with an invalid category are placed under CategoryOther.
func Group(items []domain.EquipmentItem) Grouped {
	buckets := make([][]domain.EquipmentItem, len(domain.Categories))
	for _, item := range items {
		rank := domain.CategoryOther.Rank()
		if item.Category.Valid() {
			rank = item.Category.Rank()
		}
		buckets[rank] = append(buckets[rank], item)
	}

	groups := make(Grouped, 0, len(domain.Categories))
	for i, c := range domain.Categories {
		bucket := buckets[i]
		if len(bucket) == 0 {
			continue
		}
		slices.SortStableFunc(bucket, func(a, b domain.EquipmentItem) int {
			return a.RequirementLevel.Rank() - b.RequirementLevel.Rank()
		})
		groups = append(groups, CategoryGroup{Category: c, Items: bucket})
	}
	return groups
}

// Toggle returns a copy of s with id's flag inverted.
func Toggle(s State, id string) State {
	next := s.clone()
	if next.Checked(id) {
		delete(next.checked, id)
	} else {
		next.checked[id] = struct{}{}
	}
	return next
}

// CheckAll returns a copy of s with every item checked. Ids outside items keep
// their flag.
func CheckAll(s State, items []domain.EquipmentItem) State {
	next := s.clone()
	for _, item := range items {
		next.checked[item.ID] = struct{}{}
	}
	return next
}

// ClearAll returns the empty state.
func ClearAll() State {
	return State{}
}

type Progress struct {
	Checked int     `json:"checked"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// ComputeProgress counts the checked items among items. Checked ids that are
// not in items are ignored.
func ComputeProgress(items []domain.EquipmentItem, s State) Progress {
	p := Progress{Total: len(items)}
	for _, item := range items {
		if s.Checked(item.ID) {
			p.Checked++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Checked) / float64(p.Total) * 100
	}
	return p
}

// Rounded is Percent rounded to the nearest whole number for display.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent))
}

func (p Progress) Complete() bool {
	return p.Total > 0 && p.Checked == p.Total
}

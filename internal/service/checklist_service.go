package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vbonduro/trailplan/internal/catalog"
	"github.com/vbonduro/trailplan/internal/checklist"
	"github.com/vbonduro/trailplan/internal/domain"
	"github.com/vbonduro/trailplan/internal/kv"
)

// ErrNotFound is returned when a plan, template or mountain id is unknown.
var ErrNotFound = errors.New("not found")

// catalogSource is the subset of catalog.Live the services require.
type catalogSource interface {
	Current() *catalog.Catalog
}

// Selection chooses the candidate set of a checklist. At most one of PlanID,
// TemplateID and All is expected; the zero Selection means the first plan's
// equipment, or the whole catalog when there are no plans.
type Selection struct {
	PlanID     string
	TemplateID string
	All        bool
	WinterOnly bool
}

type GroupView struct {
	Category domain.Category
	Items    []domain.EquipmentItem
	Progress checklist.Progress
}

type ChecklistView struct {
	Title     string
	Selection Selection
	Groups    []GroupView
	Progress  checklist.Progress
	State     checklist.State
}

// ChecklistService owns the persisted CheckState of each scope. Every
// operation reads the stored state, so changes made by another process
// sharing the store (the CLI next to a running server) are never lost.
type ChecklistService struct {
	catalog catalogSource
	states  kv.Store
	logger  *slog.Logger

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

func NewChecklistService(cat catalogSource, states kv.Store, logger *slog.Logger) *ChecklistService {
	return &ChecklistService{catalog: cat, states: states, logger: logger}
}

// State returns the stored state for scope. A store read failure or a
// corrupt value yields the empty state.
func (s *ChecklistService) State(ctx context.Context, scope string) checklist.State {
	raw, err := s.states.Get(ctx, scope, checklist.StorageKey)
	if err != nil {
		s.logger.Error("failed to read check state, starting empty", "scope", scope, "error", err)
		raw = nil
	}
	st, ok := checklist.DecodeReport(raw)
	if !ok {
		s.logger.Warn("ignoring malformed check state", "scope", scope, "bytes", len(raw))
	}
	return st
}

func (s *ChecklistService) save(ctx context.Context, scope string, st checklist.State) error {
	if err := s.states.Set(ctx, scope, checklist.StorageKey, checklist.Encode(st)); err != nil {
		return fmt.Errorf("failed to save check state: %w", err)
	}
	return nil
}

// Validate reports ErrNotFound when sel names an unknown plan or template.
func (s *ChecklistService) Validate(sel Selection) error {
	_, _, err := s.candidates(sel)
	return err
}

// View builds the grouped checklist for sel with scope's state.
func (s *ChecklistService) View(ctx context.Context, scope string, sel Selection) (*ChecklistView, error) {
	title, items, err := s.candidates(sel)
	if err != nil {
		return nil, err
	}
	st := s.State(ctx, scope)

	groups := checklist.Group(items)
	view := &ChecklistView{
		Title:     title,
		Selection: sel,
		Groups:    make([]GroupView, 0, len(groups)),
		Progress:  checklist.ComputeProgress(items, st),
		State:     st,
	}
	for _, g := range groups {
		view.Groups = append(view.Groups, GroupView{
			Category: g.Category,
			Items:    g.Items,
			Progress: g.Progress(st),
		})
	}
	return view, nil
}

// Toggle flips one item and persists the result.
func (s *ChecklistService) Toggle(ctx context.Context, scope, itemID string) (checklist.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := checklist.Toggle(s.State(ctx, scope), itemID)
	if err := s.save(ctx, scope, next); err != nil {
		return checklist.State{}, err
	}
	s.logger.Debug("toggled item", "scope", scope, "item_id", itemID, "checked", next.Checked(itemID))
	return next, nil
}

// CheckAll checks every item of the selection and persists the result.
func (s *ChecklistService) CheckAll(ctx context.Context, scope string, sel Selection) (checklist.State, error) {
	_, items, err := s.candidates(sel)
	if err != nil {
		return checklist.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := checklist.CheckAll(s.State(ctx, scope), items)
	if err := s.save(ctx, scope, next); err != nil {
		return checklist.State{}, err
	}
	s.logger.Info("checked all items", "scope", scope, "items", len(items))
	return next, nil
}

// Clear resets scope to the empty state.
func (s *ChecklistService) Clear(ctx context.Context, scope string) (checklist.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := checklist.ClearAll()
	if err := s.save(ctx, scope, next); err != nil {
		return checklist.State{}, err
	}
	s.logger.Info("cleared check state", "scope", scope)
	return next, nil
}

func (s *ChecklistService) candidates(sel Selection) (string, []domain.EquipmentItem, error) {
	cat := s.catalog.Current()

	var (
		title string
		src   checklist.Source
	)
	switch {
	case sel.PlanID != "":
		plan := cat.Plan(sel.PlanID)
		if plan == nil {
			return "", nil, fmt.Errorf("plan %q: %w", sel.PlanID, ErrNotFound)
		}
		title, src = plan.Title, checklist.IDs(plan.EquipmentIDs...)
	case sel.TemplateID != "":
		tpl := cat.Template(sel.TemplateID)
		if tpl == nil {
			return "", nil, fmt.Errorf("template %q: %w", sel.TemplateID, ErrNotFound)
		}
		title, src = tpl.Name, checklist.Template(tpl.ID)
	case sel.All:
		title, src = allEquipmentTitle, checklist.All()
	default:
		plans := cat.Plans()
		if len(plans) == 0 {
			title, src = allEquipmentTitle, checklist.All()
			break
		}
		title, src = plans[0].Title, checklist.IDs(plans[0].EquipmentIDs...)
	}

	items := checklist.Resolve(cat, src)
	if sel.WinterOnly {
		items = checklist.Filter(items, checklist.WinterOnly)
	}
	return title, items, nil
}

const allEquipmentTitle = "すべての装備"

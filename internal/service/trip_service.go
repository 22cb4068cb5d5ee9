package service

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vbonduro/trailplan/internal/catalog"
	"github.com/vbonduro/trailplan/internal/checklist"
	"github.com/vbonduro/trailplan/internal/domain"
	"github.com/vbonduro/trailplan/internal/fare"
)

const (
	homePlans     = 3
	homeMountains = 3
	cardTags      = 3
)

// PlanSummary is a plan with its mountain resolved for list rendering.
// Mountain is nil when the plan references an unknown mountain. On is the
// plan day and is only meaningful when Dated is set.
type PlanSummary struct {
	domain.Plan
	Mountain *domain.Mountain
	On       time.Time
	Dated    bool
}

type PlanList struct {
	Upcoming []PlanSummary
	Past     []PlanSummary
}

type Home struct {
	Plans     []PlanSummary
	Mountains []MountainCard
}

// PlanDetail is everything the plan page shows. Equipment carries no check
// state.
type PlanDetail struct {
	PlanSummary
	Equipment checklist.Grouped
	OneWay    int
	RoundTrip int
}

// MountainCard is a mountain trimmed for the list page.
type MountainCard struct {
	domain.Mountain
	Tags     []string
	MoreTags int
}

type MountainDetail struct {
	domain.Mountain
	Plans []PlanSummary
}

// TripService builds the read-only plan and mountain views.
type TripService struct {
	catalog catalogSource
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
}

func NewTripService(cat catalogSource, loc *time.Location, logger *slog.Logger) *TripService {
	if loc == nil {
		loc = time.Local
	}
	return &TripService{catalog: cat, loc: loc, now: time.Now, logger: logger}
}

// today is the start of the current day in the service's location.
func (s *TripService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// summarize resolves p's mountain in cat, the same snapshot p came from.
func (s *TripService) summarize(cat *catalog.Catalog, p domain.Plan) PlanSummary {
	sum := PlanSummary{Plan: p, Mountain: cat.Mountain(p.MountainID)}
	day, err := p.Day(s.loc)
	if err != nil {
		s.logger.Warn("plan has no usable date", "plan_id", p.ID, "error", err)
		return sum
	}
	sum.On, sum.Dated = day, true
	return sum
}

// ListPlans splits the catalog's plans into upcoming (today or later, soonest
// first) and past (most recent first). Undated plans are upcoming and sort
// last.
func (s *TripService) ListPlans() PlanList {
	return s.listPlans(s.catalog.Current())
}

func (s *TripService) listPlans(cat *catalog.Catalog) PlanList {
	today := s.today()
	list := PlanList{Upcoming: []PlanSummary{}, Past: []PlanSummary{}}

	for _, p := range cat.Plans() {
		sum := s.summarize(cat, p)
		if sum.Dated && sum.On.Before(today) {
			list.Past = append(list.Past, sum)
			continue
		}
		list.Upcoming = append(list.Upcoming, sum)
	}

	sort.SliceStable(list.Upcoming, func(i, j int) bool {
		a, b := list.Upcoming[i], list.Upcoming[j]
		if a.Dated != b.Dated {
			return a.Dated
		}
		return a.On.Before(b.On)
	})
	sort.SliceStable(list.Past, func(i, j int) bool {
		return list.Past[i].On.After(list.Past[j].On)
	})
	return list
}

func (s *TripService) Home() Home {
	cat := s.catalog.Current()
	upcoming := s.listPlans(cat).Upcoming
	mountains := s.mountainCards(cat, 0)
	return Home{
		Plans:     upcoming[:min(homePlans, len(upcoming))],
		Mountains: mountains[:min(homeMountains, len(mountains))],
	}
}

func (s *TripService) Plan(id string) (*PlanDetail, error) {
	cat := s.catalog.Current()
	p := cat.Plan(id)
	if p == nil {
		return nil, fmt.Errorf("plan %q: %w", id, ErrNotFound)
	}

	oneWay := fare.Total(p.Access)
	return &PlanDetail{
		PlanSummary: s.summarize(cat, *p),
		Equipment:   checklist.Group(checklist.Resolve(cat, checklist.IDs(p.EquipmentIDs...))),
		OneWay:      oneWay,
		RoundTrip:   fare.RoundTrip(oneWay),
	}, nil
}

// Mountains lists mountain cards in catalog order. A zero difficulty lists
// every mountain.
func (s *TripService) Mountains(difficulty domain.Difficulty) []MountainCard {
	return s.mountainCards(s.catalog.Current(), difficulty)
}

func (s *TripService) mountainCards(cat *catalog.Catalog, difficulty domain.Difficulty) []MountainCard {
	cards := []MountainCard{}
	for _, m := range cat.Mountains() {
		if difficulty != 0 && m.Difficulty != difficulty {
			continue
		}
		n := min(cardTags, len(m.Features))
		cards = append(cards, MountainCard{
			Mountain: m,
			Tags:     m.Features[:n],
			MoreTags: len(m.Features) - n,
		})
	}
	return cards
}

// Mountain returns a mountain with the plans that climb it, soonest first.
func (s *TripService) Mountain(id string) (*MountainDetail, error) {
	cat := s.catalog.Current()
	m := cat.Mountain(id)
	if m == nil {
		return nil, fmt.Errorf("mountain %q: %w", id, ErrNotFound)
	}

	detail := &MountainDetail{Mountain: *m, Plans: []PlanSummary{}}
	list := s.listPlans(cat)
	for _, sum := range append(list.Upcoming, list.Past...) {
		if sum.MountainID == id {
			detail.Plans = append(detail.Plans, sum)
		}
	}
	return detail, nil
}

package report

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/store/billing"
)

var ErrUnknownFamily = errors.New("unknown report family")

// Registry maps report families to their exporters
type Registry interface {
	// Register adds the exporter of a family
	Register(family domain.ReportFamily, exporter Exporter) error
	// Get returns the exporter registered for the family
	Get(family domain.ReportFamily) (Exporter, error)
	// Families returns the registered families in name order
	Families() []domain.ReportFamily
}

type registry struct {
	mu        sync.RWMutex
	exporters map[domain.ReportFamily]Exporter
}

func NewRegistry() Registry {
	return &registry{
		exporters: make(map[domain.ReportFamily]Exporter),
	}
}

// NewDefaultRegistry registers the collection, expense and summary families
// over one store.
func NewDefaultRegistry(store billing.Store, settings Settings) (Registry, error) {
	r := NewRegistry()
	families := map[domain.ReportFamily]Exporter{
		domain.FamilyCollection: NewCollectionService(store, settings),
		domain.FamilyExpense:    NewExpenseService(store, settings),
		domain.FamilySummary:    NewSummaryService(store, settings),
	}
	for family, exporter := range families {
		if err := r.Register(family, exporter); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(family domain.ReportFamily, exporter Exporter) error {
	if family == "" {
		return fmt.Errorf("family name cannot be empty")
	}
	if exporter == nil {
		return fmt.Errorf("exporter cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[family]; exists {
		return fmt.Errorf("family %q is already registered", family)
	}

	r.exporters[family] = exporter
	return nil
}

func (r *registry) Get(family domain.ReportFamily) (Exporter, error) {
	r.mu.RLock()
	exporter, exists := r.exporters[family]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	return exporter, nil
}

func (r *registry) Families() []domain.ReportFamily {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]domain.ReportFamily, 0, len(r.exporters))
	for family := range r.exporters {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}

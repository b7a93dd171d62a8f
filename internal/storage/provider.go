package storage

import (
	"context"
	"sync"

	"lmsadmin/internal/datatable"
)

// Lister is the read side of a repository.
type Lister[R any] interface {
	List(ctx context.Context, filter ListFilter) ([]R, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// Provider serves table pages from a repository. Sort column keys are
// passed to the repository as ListFilter.OrderBy. The base filter may be
// changed while a fetch runs on another goroutine.
type Provider[R any] struct {
	repo Lister[R]

	mu   sync.RWMutex
	base ListFilter
}

// NewProvider creates a provider over repo.
func NewProvider[R any](repo Lister[R]) *Provider[R] {
	return &Provider[R]{repo: repo}
}

// WithFilter sets the filter fields every query starts from, such as
// Status or ParentID.
func (p *Provider[R]) WithFilter(base ListFilter) *Provider[R] {
	p.SetFilter(base)
	return p
}

// Filter returns the base filter.
func (p *Provider[R]) Filter() ListFilter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.base
}

// SetFilter replaces the base filter. Fetches already running keep the
// filter they started with.
func (p *Provider[R]) SetFilter(base ListFilter) {
	p.mu.Lock()
	p.base = base
	p.mu.Unlock()
}

// FetchPage implements datatable.DataProvider.
func (p *Provider[R]) FetchPage(ctx context.Context, q datatable.Query) (datatable.Page[R], error) {
	f := p.Filter()
	f.Search = q.Search
	if q.Sorted {
		f.OrderBy = q.Sort.Column
		f.OrderDesc = q.Sort.Direction == datatable.Desc
	}

	total, err := p.repo.Count(ctx, f)
	if err != nil {
		return datatable.Page[R]{}, err
	}
	if q.PerPage > 0 {
		f.Limit = q.PerPage
		f.Offset = q.Offset()
	}
	if total == 0 || f.Offset >= total {
		return datatable.Page[R]{Total: total}, nil
	}

	rows, err := p.repo.List(ctx, f)
	if err != nil {
		return datatable.Page[R]{}, err
	}
	return datatable.Page[R]{Rows: rows, Total: total}, nil
}

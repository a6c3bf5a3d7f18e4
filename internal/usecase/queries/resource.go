package queries

import (
	"context"
	"time"

	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra"
	"libreserve/internal/infra/availability"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/shared"
)

// ResourceQueries is the catalog read surface: filtered listings for cards
// and per-day free windows for time selectors.
type ResourceQueries interface {
	List(ctx context.Context, filter shared.ResourceFilter) ([]*ResourceView, error)
	Get(ctx context.Context, id string) (*ResourceView, error)
	FreeWindows(ctx context.Context, id string, date schedule.Date) (*AvailabilityView, error)
}

type resourceQueriesImpl struct {
	catalog shared.CatalogStore
	index   *availability.Index
	hours   schedule.OperatingHours
	loc     *time.Location
}

func NewResourceQueries(
	catalog shared.CatalogStore,
	index *availability.Index,
	hours schedule.OperatingHours,
	loc *time.Location,
) ResourceQueries {
	return &resourceQueriesImpl{
		catalog: catalog,
		index:   index,
		hours:   hours,
		loc:     loc,
	}
}

func (q *resourceQueriesImpl) List(ctx context.Context, filter shared.ResourceFilter) ([]*ResourceView, error) {
	all, err := q.catalog.All(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list resources")
	}

	result := make([]*ResourceView, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			result = append(result, toResourceView(r))
		}
	}
	return result, nil
}

func (q *resourceQueriesImpl) Get(ctx context.Context, id string) (*ResourceView, error) {
	r, err := q.catalog.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}
	return toResourceView(r), nil
}

func (q *resourceQueriesImpl) FreeWindows(ctx context.Context, id string, date schedule.Date) (*AvailabilityView, error) {
	r, err := q.catalog.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}

	view := &AvailabilityView{
		ResourceID: r.ID(),
		Date:       date.String(),
	}

	if r.Class() == resource.ClassBook {
		total := r.Copies()
		available := total - q.index.ActiveLoans(r.ID())
		if available < 0 {
			available = 0
		}
		view.CopiesTotal = &total
		view.CopiesAvailable = &available
		return view, nil
	}

	windows := q.index.FreeWindows(r.ID(), date, q.hours, q.loc)
	view.Windows = make([]FreeWindowView, len(windows))
	for i, w := range windows {
		view.Windows[i] = FreeWindowView{Start: w.Start(), End: w.End()}
	}
	return view, nil
}

func toResourceView(r *resource.Resource) *ResourceView {
	view := &ResourceView{
		ID:        r.ID(),
		Name:      r.Name(),
		Class:     r.Class().String(),
		LibraryID: r.LibraryID(),
		Status:    r.Status().String(),
	}
	switch r.Class() {
	case resource.ClassLaptop:
		os, brand := r.OS(), r.Brand()
		view.OS = &os
		view.Brand = &brand
	case resource.ClassCubicle:
		capacity := r.Capacity()
		view.Capacity = &capacity
	case resource.ClassBook:
		copies := r.Copies()
		view.Copies = &copies
	}
	return view
}

package request

import (
	"libreserve/internal/domain/resource"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/shared"
)

type ListResourcesQuery struct {
	Class       *string `form:"class"`
	OS          *string `form:"os"`
	Brand       *string `form:"brand"`
	CapacityMin *int    `form:"capacityMin"`
	CapacityMax *int    `form:"capacityMax"`
	LibraryID   *string `form:"libraryId"`
	Status      *string `form:"status"`
}

func (q ListResourcesQuery) ToFilter() (shared.ResourceFilter, error) {
	filter := shared.ResourceFilter{
		OS:          q.OS,
		Brand:       q.Brand,
		CapacityMin: q.CapacityMin,
		CapacityMax: q.CapacityMax,
		LibraryID:   q.LibraryID,
	}
	if q.Class != nil {
		class := resource.Class(*q.Class)
		if !class.IsValid() {
			return shared.ResourceFilter{}, errs.Newf("unknown resource class %q", *q.Class)
		}
		filter.Class = &class
	}
	if q.Status != nil {
		status := resource.Status(*q.Status)
		if !status.IsValid() {
			return shared.ResourceFilter{}, errs.Newf("unknown resource status %q", *q.Status)
		}
		filter.Status = &status
	}
	return filter, nil
}

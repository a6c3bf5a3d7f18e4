package response

import (
	"time"

	"libreserve/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Class     string  `json:"class"`
	LibraryID string  `json:"libraryId"`
	Status    string  `json:"status"`
	OS        *string `json:"os,omitempty"`
	Brand     *string `json:"brand,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
	Copies    *int    `json:"copies,omitempty"`
}

type FreeWindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	ResourceID      string               `json:"resourceId"`
	Date            string               `json:"date"`
	Windows         []FreeWindowResponse `json:"windows,omitempty"`
	CopiesTotal     *int                 `json:"copiesTotal,omitempty"`
	CopiesAvailable *int                 `json:"copiesAvailable,omitempty"`
}

func FromResourceView(view *queries.ResourceView) *ResourceResponse {
	var resp ResourceResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromResourceViews(views []*queries.ResourceView) []*ResourceResponse {
	result := make([]*ResourceResponse, len(views))
	for i, v := range views {
		result[i] = FromResourceView(v)
	}
	return result
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

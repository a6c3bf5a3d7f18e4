package memstore

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"libreserve/internal/domain/resource"
	"libreserve/internal/infra"
	"libreserve/internal/pkg/errs"
)

// catalogEntry is the on-disk shape of one catalog item.
type catalogEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	LibraryID string `json:"libraryId"`
	Status    string `json:"status"`
	OS        string `json:"os,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
	Copies    int    `json:"copies,omitempty"`
}

// CatalogStore is an immutable in-memory catalog loaded once at startup.
// Safe for any number of concurrent readers.
type CatalogStore struct {
	byID  map[string]*resource.Resource
	order []string
}

func NewCatalogStore(resources []*resource.Resource) *CatalogStore {
	byID := make(map[string]*resource.Resource, len(resources))
	order := make([]string, 0, len(resources))
	for _, r := range resources {
		if _, dup := byID[r.ID()]; dup {
			continue
		}
		byID[r.ID()] = r
		order = append(order, r.ID())
	}
	sort.Strings(order)
	return &CatalogStore{byID: byID, order: order}
}

// LoadCatalog reads the catalog JSON file and builds the store.
func LoadCatalog(path string) (*CatalogStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read catalog file %s", path)
	}
	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errs.Wrapf(err, "failed to parse catalog file %s", path)
	}

	resources := make([]*resource.Resource, 0, len(entries))
	for _, e := range entries {
		r, err := buildResource(e)
		if err != nil {
			return nil, errs.Wrapf(err, "invalid catalog entry %q", e.ID)
		}
		resources = append(resources, r)
	}
	return NewCatalogStore(resources), nil
}

func buildResource(e catalogEntry) (*resource.Resource, error) {
	class := resource.Class(e.Class)
	status := resource.Status(e.Status)
	switch class {
	case resource.ClassLaptop:
		return resource.NewLaptop(e.ID, e.Name, e.LibraryID, status, e.OS, e.Brand)
	case resource.ClassCubicle:
		return resource.NewCubicle(e.ID, e.Name, e.LibraryID, status, e.Capacity)
	case resource.ClassBook:
		return resource.NewBook(e.ID, e.Name, e.LibraryID, status, e.Copies)
	default:
		return nil, resource.ErrInvalidClass
	}
}

func (s *CatalogStore) All(_ context.Context) ([]*resource.Resource, error) {
	result := make([]*resource.Resource, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result, nil
}

func (s *CatalogStore) FindByID(_ context.Context, id string) (*resource.Resource, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapStoreErr("resource not found", nil, infra.KindNotFound)
	}
	return r, nil
}

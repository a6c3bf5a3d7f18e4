package pgstore

import (
	"context"

	"libreserve/internal/domain/resource"
	"libreserve/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStore reads the resource catalog from Postgres.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

const selectResourceColumns = `
	SELECT id, name, class, library_id, status, os, brand, capacity, copies
	FROM resources
`

func (s *CatalogStore) All(ctx context.Context) ([]*resource.Resource, error) {
	rows, err := s.pool.Query(ctx, selectResourceColumns+" ORDER BY id ASC")
	if err != nil {
		return nil, infra.WrapStoreErr("failed to list resources", err)
	}
	defer rows.Close()

	var result []*resource.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, infra.WrapStoreErr("failed to scan resource", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr("failed to read resources", err)
	}
	return result, nil
}

func (s *CatalogStore) FindByID(ctx context.Context, id string) (*resource.Resource, error) {
	rows, err := s.pool.Query(ctx, selectResourceColumns+" WHERE id = $1", id)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to find resource", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapStoreErr("failed to find resource", err)
		}
		return nil, infra.WrapStoreErr("resource not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	r, err := scanResource(rows)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to scan resource", err)
	}
	return r, nil
}

type resourceRow interface {
	Scan(dest ...any) error
}

func scanResource(row resourceRow) (*resource.Resource, error) {
	var (
		id, name, class, libraryID, status string
		os, brand                          *string
		capacity, copies                   *int
	)
	if err := row.Scan(&id, &name, &class, &libraryID, &status, &os, &brand, &capacity, &copies); err != nil {
		return nil, err
	}

	st := resource.Status(status)
	switch resource.Class(class) {
	case resource.ClassLaptop:
		return resource.NewLaptop(id, name, libraryID, st, deref(os), deref(brand))
	case resource.ClassCubicle:
		return resource.NewCubicle(id, name, libraryID, st, derefInt(capacity))
	case resource.ClassBook:
		return resource.NewBook(id, name, libraryID, st, derefInt(copies))
	default:
		return nil, resource.ErrInvalidClass
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

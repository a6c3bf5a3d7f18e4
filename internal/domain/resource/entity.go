package resource

import (
	"errors"
	"strings"
)

var (
	ErrEmptyResourceID = errors.New("resource id cannot be empty")
	ErrEmptyName       = errors.New("resource name cannot be empty")
	ErrInvalidClass    = errors.New("invalid resource class")
	ErrInvalidStatus   = errors.New("invalid resource status")
	ErrInvalidCapacity = errors.New("cubicle capacity must be positive")
	ErrInvalidCopies   = errors.New("book copy count must be positive")
	ErrMissingOS       = errors.New("laptop operating system cannot be empty")
	ErrMissingBrand    = errors.New("laptop brand cannot be empty")
)

// Resource is a bookable catalog item. Attributes are fixed at catalog load
// time; only Status may change afterwards.
type Resource struct {
	id        string
	name      string
	class     Class
	libraryID string
	status    Status

	// Laptop attributes
	os    string
	brand string
	// Cubicle attributes
	capacity int
	// Book attributes
	copies int
}

func NewResource(id, name string, class Class, libraryID string, status Status) (*Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyResourceID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !class.IsValid() {
		return nil, ErrInvalidClass
	}
	if status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Resource{
		id:        id,
		name:      name,
		class:     class,
		libraryID: strings.TrimSpace(libraryID),
		status:    status,
	}, nil
}

func NewLaptop(id, name, libraryID string, status Status, os, brand string) (*Resource, error) {
	r, err := NewResource(id, name, ClassLaptop, libraryID, status)
	if err != nil {
		return nil, err
	}
	os = strings.TrimSpace(os)
	if os == "" {
		return nil, ErrMissingOS
	}
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, ErrMissingBrand
	}
	r.os = os
	r.brand = brand
	return r, nil
}

func NewCubicle(id, name, libraryID string, status Status, capacity int) (*Resource, error) {
	r, err := NewResource(id, name, ClassCubicle, libraryID, status)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	r.capacity = capacity
	return r, nil
}

func NewBook(id, name, libraryID string, status Status, copies int) (*Resource, error) {
	r, err := NewResource(id, name, ClassBook, libraryID, status)
	if err != nil {
		return nil, err
	}
	if copies <= 0 {
		return nil, ErrInvalidCopies
	}
	r.copies = copies
	return r, nil
}

func (r *Resource) ID() string        { return r.id }
func (r *Resource) Name() string      { return r.name }
func (r *Resource) Class() Class      { return r.class }
func (r *Resource) LibraryID() string { return r.libraryID }
func (r *Resource) Status() Status    { return r.status }
func (r *Resource) OS() string        { return r.os }
func (r *Resource) Brand() string     { return r.brand }
func (r *Resource) Capacity() int     { return r.capacity }
func (r *Resource) Copies() int       { return r.copies }

func (r *Resource) IsActive() bool {
	return r.status == StatusActive
}

func (r *Resource) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

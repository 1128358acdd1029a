package ports

import "github.com/greenharbor/greennest-backend/internal/core/domain"

// overwrite replaces dst with src when src is present. Absent fields leave
// the stored value untouched; this is the single merge primitive every patch
// type goes through.
func overwrite[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// UserPatch is a partial user update. Nil fields mean "leave unchanged".
// Password is handled by the auth service (it must be re-hashed, and an empty
// string is treated as absent), so Apply skips it.
type UserPatch struct {
	Name     *string
	Email    *string
	Address  *string
	Password *string
}

func (p UserPatch) Apply(u *domain.User) {
	overwrite(&u.Name, p.Name)
	overwrite(&u.Email, p.Email)
	overwrite(&u.Address, p.Address)
}

// OrderPatch is a partial order update. Two fields keep the legacy guard
// semantics: Items only overwrites when the new list is non-empty (an update
// cannot clear line items) and TotalAmount only overwrites when positive (an
// update cannot zero out a total). UserID is not patchable: ownership is
// immutable after placement.
type OrderPatch struct {
	Name        *string
	Address     *string
	Status      *string
	Items       []domain.OrderItem
	TotalAmount *int64
}

func (p OrderPatch) Apply(o *domain.Order) {
	overwrite(&o.Name, p.Name)
	overwrite(&o.Address, p.Address)
	overwrite(&o.Status, p.Status)
	if len(p.Items) > 0 {
		o.Items = p.Items
	}
	if p.TotalAmount != nil && *p.TotalAmount > 0 {
		o.TotalAmount = *p.TotalAmount
	}
}

// PlantPatch is a partial catalog update. Price only overwrites when
// positive and Stock when non-negative, preserving the zero-means-no-change
// convention of the other patch types.
type PlantPatch struct {
	Name        *string
	Description *string
	Category    *string
	ImageURL    *string
	Price       *int64
	Stock       *int
}

func (p PlantPatch) Apply(pl *domain.Plant) {
	overwrite(&pl.Name, p.Name)
	overwrite(&pl.Description, p.Description)
	overwrite(&pl.Category, p.Category)
	overwrite(&pl.ImageURL, p.ImageURL)
	if p.Price != nil && *p.Price > 0 {
		pl.Price = *p.Price
	}
	if p.Stock != nil && *p.Stock >= 0 {
		pl.Stock = *p.Stock
	}
}

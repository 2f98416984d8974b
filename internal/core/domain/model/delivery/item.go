package delivery

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructors")

// Item is one itemized weight entry of a delivery: the weight collected for
// a single category. Items belong to exactly one Delivery and are replaced
// wholesale by ReplaceItems; at most one item exists per category.
type Item struct {
	// id uniquely identifies the item row
	id kernel.UUID
	// categoryID references the category in the external catalog
	categoryID kernel.UUID
	// weight is the collected mass for this category, in kilograms
	weight kernel.Weight

	guard guard.ConstructorGuard
}

// NewItem creates a weight entry for the given category.
// The weight must be a valid (non-negative) kernel.Weight.
func NewItem(categoryID kernel.UUID, weight kernel.Weight) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), categoryID, weight)
}

// RestoreItem reconstructs an Item from persistent storage.
func RestoreItem(id kernel.UUID, categoryID kernel.UUID, weight kernel.Weight) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setCategoryID(categoryID),
		item.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// CategoryID returns the referenced category identifier.
func (i *Item) CategoryID() kernel.UUID {
	return i.categoryID
}

// Weight returns the collected weight for the category.
func (i *Item) Weight() kernel.Weight {
	return i.weight
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setCategoryID(categoryID kernel.UUID) error {
	if err := categoryID.Validate(); err != nil {
		return err
	}
	i.categoryID = categoryID
	return nil
}

func (i *Item) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	i.weight = weight
	return nil
}

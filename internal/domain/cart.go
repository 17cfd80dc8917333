package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Items        []CartItem
	TotalInCents int64
	Active       bool

	CreatedAt time.Time
}

// CartItem is a cart membership. PriceInCents is the item price captured when it was added.
type CartItem struct {
	Item         Item
	PriceInCents int64

	AddedAt time.Time
}

func (c Cart) Contains(itemID uuid.UUID) bool {
	for _, ci := range c.Items {
		if ci.Item.ID == itemID {
			return true
		}
	}
	return false
}

func (c Cart) FormatTotal() string {
	return FormatPrice(c.TotalInCents)
}

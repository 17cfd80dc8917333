package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxItemNameLength        = 200
	maxItemDescriptionLength = 200
)

type Item struct {
	ID           uuid.UUID
	Name         string
	Description  string
	PriceInCents int64
	SoldAt       *time.Time

	CreatedAt time.Time
}

func (i Item) IsSold() bool {
	return i.SoldAt != nil
}

func (i Item) FormatPrice() string {
	return FormatPrice(i.PriceInCents)
}

func (i Item) Price() Money {
	return NewMoney(i.PriceInCents)
}

// ItemParams are the editable fields of an item.
type ItemParams struct {
	Name         string
	Description  string
	PriceInCents int64
}

func (p ItemParams) Validate() error {
	switch {
	case p.Name == "":
		return &ValidationError{Field: "name", Message: "is required"}
	case utf8.RuneCountInString(p.Name) > maxItemNameLength:
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxItemNameLength)}
	case strings.TrimSpace(p.Description) == "":
		return &ValidationError{Field: "description", Message: "is required"}
	case utf8.RuneCountInString(p.Description) > maxItemDescriptionLength:
		return &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", maxItemDescriptionLength)}
	case p.PriceInCents < 0:
		return &ValidationError{Field: "price_in_cents", Message: "must be a non-negative integer"}
	}

	return nil
}

type ItemFilter struct {
	Text        string
	IncludeSold bool
}

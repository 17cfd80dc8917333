package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Contact is the optional customer information collected at checkout.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
}

const (
	maxNameLength  = 100
	maxEmailLength = 254
)

// Validate enforces the stored column widths only; every field may be empty.
func (c Contact) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"first_name", c.FirstName, maxNameLength},
		{"last_name", c.LastName, maxNameLength},
		{"email", c.Email, maxEmailLength},
	}

	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return &ValidationError{Field: f.name, Message: fmt.Sprintf("must be at most %d characters", f.max)}
		}
	}

	return nil
}

type Order struct {
	ID           uuid.UUID
	Contact      Contact
	CartID       uuid.UUID
	UserID       uuid.UUID
	Items        []CartItem
	TotalInCents int64

	CreatedAt time.Time
}

func (o Order) FormatTotal() string {
	return FormatPrice(o.TotalInCents)
}

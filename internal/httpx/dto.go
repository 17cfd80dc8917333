package httpx

import (
	"time"

	"github.com/nikolayk812/garage-sale/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ItemResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PriceInCents int64      `json:"price_in_cents"`
	Price        string     `json:"price"`
	Sold         bool       `json:"sold"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

type CatalogResponse struct {
	Items       []ItemResponse `json:"items"`
	Filter      string         `json:"filter"`
	IncludeSold bool           `json:"include_sold"`
	Page        int            `json:"page"`
	NumPages    int            `json:"num_pages"`
	PageSize    int            `json:"page_size"`
	Count       int            `json:"count"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

type CartItemResponse struct {
	Item         ItemResponse `json:"item"`
	PriceInCents int64        `json:"price_in_cents"`
	Price        string       `json:"price"`
	AddedAt      time.Time    `json:"added_at"`
}

type CartResponse struct {
	ID           string             `json:"id"`
	Items        []CartItemResponse `json:"items"`
	TotalInCents int64              `json:"total_in_cents"`
	Total        string             `json:"total"`
	Active       bool               `json:"active"`
}

type CheckoutFormResponse struct {
	Cart   CartResponse `json:"cart"`
	Fields []string     `json:"fields"`
}

type OrderResponse struct {
	ID           string             `json:"id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Email        string             `json:"email"`
	CartID       string             `json:"cart_id"`
	Items        []CartItemResponse `json:"items"`
	TotalInCents int64              `json:"total_in_cents"`
	Total        string             `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type LoginFormResponse struct {
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func mapItemToResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Description:  item.Description,
		PriceInCents: item.PriceInCents,
		Price:        item.FormatPrice(),
		Sold:         item.IsSold(),
		SoldAt:       item.SoldAt,
		CreatedAt:    item.CreatedAt,
	}
}

func mapRowsToResponse(rows []domain.CatalogRow) []ItemResponse {
	out := make([]ItemResponse, len(rows))
	for i, row := range rows {
		out[i] = mapItemToResponse(row.Item)
		out[i].Price = row.Price
		out[i].Sold = row.Sold
	}
	return out
}

// mapCartItemToResponse reports the price captured when the item was added.
func mapCartItemToResponse(ci domain.CartItem) CartItemResponse {
	return CartItemResponse{
		Item:         mapItemToResponse(ci.Item),
		PriceInCents: ci.PriceInCents,
		Price:        domain.FormatPrice(ci.PriceInCents),
		AddedAt:      ci.AddedAt,
	}
}

func mapCartToResponse(cart domain.Cart) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i, ci := range cart.Items {
		items[i] = mapCartItemToResponse(ci)
	}

	return CartResponse{
		ID:           cart.ID.String(),
		Items:        items,
		TotalInCents: cart.TotalInCents,
		Total:        cart.FormatTotal(),
		Active:       cart.Active,
	}
}

func mapOrderToResponse(order domain.Order) OrderResponse {
	items := make([]CartItemResponse, len(order.Items))
	for i, ci := range order.Items {
		items[i] = mapCartItemToResponse(ci)
	}

	return OrderResponse{
		ID:           order.ID.String(),
		FirstName:    order.Contact.FirstName,
		LastName:     order.Contact.LastName,
		Email:        order.Contact.Email,
		CartID:       order.CartID.String(),
		Items:        items,
		TotalInCents: order.TotalInCents,
		Total:        order.FormatTotal(),
		CreatedAt:    order.CreatedAt,
	}
}

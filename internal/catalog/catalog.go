// Package catalog answers item listing requests: filtering, offset pagination and presentation rows.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

const (
	DefaultPageSize = 20
	FeaturedSize    = 10
)

type catalog struct {
	items    port.ItemRepository
	pageSize int
}

func New(items port.ItemRepository, pageSize int) (port.Catalog, error) {
	if items == nil {
		return nil, fmt.Errorf("items is nil")
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("pageSize[%d] must be positive", pageSize)
	}

	return &catalog{
		items:    items,
		pageSize: pageSize,
	}, nil
}

// List returns one page of the catalog. An empty catalog still has one, empty, page.
func (c *catalog) List(ctx context.Context, query domain.CatalogQuery) (domain.Page[domain.CatalogRow], error) {
	filter := domain.ItemFilter{
		Text:        query.Filter,
		IncludeSold: query.IncludeSold,
	}

	count, err := c.items.CountItems(ctx, filter)
	if err != nil {
		return domain.Page[domain.CatalogRow]{}, fmt.Errorf("items.CountItems: %w", err)
	}

	numPages := NumPages(count, c.pageSize)
	number := PageNumber(query.Page, numPages)

	page := domain.Page[domain.CatalogRow]{
		Items:    []domain.CatalogRow{},
		Number:   number,
		NumPages: numPages,
		PageSize: c.pageSize,
		Count:    count,
	}

	if count == 0 {
		return page, nil
	}

	items, err := c.items.ListItems(ctx, filter, c.pageSize, (number-1)*c.pageSize)
	if err != nil {
		return domain.Page[domain.CatalogRow]{}, fmt.Errorf("items.ListItems: %w", err)
	}

	page.Items = rows(items)

	return page, nil
}

func (c *catalog) Featured(ctx context.Context) ([]domain.CatalogRow, error) {
	items, err := c.items.ListFeaturedItems(ctx, FeaturedSize)
	if err != nil {
		return nil, fmt.Errorf("items.ListFeaturedItems: %w", err)
	}

	return rows(items), nil
}

// NumPages is never less than one.
func NumPages(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// PageNumber resolves a raw page parameter against the page count.
// Missing or non-integer input selects the first page; out of range input selects the last page.
func PageNumber(raw string, numPages int) int {
	number, ok := parsePage(raw)
	if !ok {
		return 1
	}

	if number < 1 || number > numPages {
		return numPages
	}

	return number
}

// parsePage reports numbers too large for int as out of range rather than invalid.
func parsePage(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}

	return n, true
}

func rows(items []domain.Item) []domain.CatalogRow {
	result := make([]domain.CatalogRow, 0, len(items))

	for _, item := range items {
		result = append(result, domain.NewCatalogRow(item))
	}

	return result
}

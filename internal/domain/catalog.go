package domain

// CatalogQuery is a catalog listing request. Page is the raw page parameter.
type CatalogQuery struct {
	Filter      string
	IncludeSold bool
	Page        string
}

// CatalogRow pairs an item with its presentation fields.
type CatalogRow struct {
	Item  Item
	Price string
	Sold  bool
}

func NewCatalogRow(item Item) CatalogRow {
	return CatalogRow{
		Item:  item,
		Price: item.FormatPrice(),
		Sold:  item.IsSold(),
	}
}

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	PageSize int
	Count    int
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

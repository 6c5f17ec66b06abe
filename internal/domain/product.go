package domain

// Product is a catalogue item offered by the storefront.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Stock       int     `json:"stock"`
}

// InStock reports whether the product can satisfy the requested quantity.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

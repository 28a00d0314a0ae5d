package client

// Product is the flat product-detail shape the client renders. Server
// products are translated into it on load, with missing numeric fields
// defaulting to 0 and missing text fields to "".
type Product struct {
	Ref             ProductRef `json:"id"`
	Name            string     `json:"name"`
	Image           string     `json:"image"`
	Category        string     `json:"category"`
	DiscountedPrice float64    `json:"discountedPrice"`
	OriginalPrice   float64    `json:"originalPrice"`
	Rating          float64    `json:"rating"`
	InStock         bool       `json:"inStock"`
}

// CartItem pairs a product with its quantity. Quantity is always >= 1; an
// item whose quantity would drop below 1 is removed instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

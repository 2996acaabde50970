package cart

import "github.com/hanahub/ab-discount-app/internal/types"

// Cart is the read-only snapshot handed to a discount function run
type Cart struct {
	Lines []Line
}

// Line is one entry of the cart. Quantity is carried for completeness;
// the platform applies percentages per unit so the evaluator never reads it.
type Line struct {
	ID          string
	Quantity    int
	Merchandise Merchandise
}

// Merchandise is what a cart line represents
type Merchandise interface {
	Type() types.MerchandiseType
}

// Product is the parent of a product variant
type Product struct {
	ID string
}

// ProductVariant is the only merchandise kind that can carry a discount
type ProductVariant struct {
	ID      string
	Product Product
}

func (v *ProductVariant) Type() types.MerchandiseType {
	return types.MerchandiseTypeProductVariant
}

// CustomProduct covers merchandise that is not backed by a catalog variant
type CustomProduct struct {
	Title string
}

func (c *CustomProduct) Type() types.MerchandiseType {
	return types.MerchandiseTypeCustomProduct
}

// ProductVariant returns the variant behind the line, if there is one
func (l Line) ProductVariant() (*ProductVariant, bool) {
	variant, ok := l.Merchandise.(*ProductVariant)
	if !ok || variant == nil {
		return nil, false
	}
	return variant, true
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

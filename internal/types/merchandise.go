package types

// MerchandiseType is the concrete kind behind a cart line's merchandise
// reference, as reported by the platform's __typename field
type MerchandiseType string

const (
	MerchandiseTypeProductVariant MerchandiseType = "ProductVariant"
	MerchandiseTypeCustomProduct  MerchandiseType = "CustomProduct"
)

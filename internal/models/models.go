package models

type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:80;uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	ImageURL    *string `gorm:"size:255"`
}

func (Product) TableName() string {
	return "products"
}

// CartItem keeps at most one row per product. The Product association is
// declared for joins only; no foreign key constraint is created, so a cart item
// may point at a product that does not exist (or no longer exists).
// Quantity is stored as a real number; fractional amounts are summed as sent.
type CartItem struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	ProductID int64    `gorm:"uniqueIndex:idx_cart_items_product;not null"`
	Quantity  float64  `gorm:"not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// All lists every model the schema is created from.
func All() []any {
	return []any{&Product{}, &CartItem{}}
}

// Package product holds the catalog entity and the events announcing its changes.
package product

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the single catalog entity. ID is assigned by storage on create and never changes.
type Product struct {
	ID    int64           `json:"id"    form:"id"    db:"id"    gorm:"primaryKey"`
	Name  string          `json:"name"  form:"name"  db:"name"  gorm:"size:100;not null" validate:"required,max=100"`
	Stock int             `json:"stock" form:"stock" db:"stock" gorm:"not null"          validate:"gte=0"`
	Color string          `json:"color" form:"color" db:"color" gorm:"size:50"           validate:"max=50"`
	Price decimal.Decimal `json:"price" form:"price" db:"price" gorm:"type:numeric(12,2)" validate:"gte=0"`
}

// TableName keeps gorm on the table created by the migrations.
func (Product) TableName() string {
	return "products"
}

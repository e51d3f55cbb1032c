// internal/models/product.go
package models

// Product is a collaborator entity owned by the catalog service. Reviews
// reference it for existence checks and the product-name join.
type Product struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Category    string  `json:"category" gorm:"size:100;index"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Active      bool    `json:"active" gorm:"default:true"`
}

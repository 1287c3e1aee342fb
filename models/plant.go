package models

// Plant 沒有使用 gorm.Model，刪除即為實際刪除資料列
type Plant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `gorm:"not null" json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	IsInStock bool    `gorm:"not null;default:true" json:"is_in_stock"`
}

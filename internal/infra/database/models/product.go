package models

import "time"

// Product is one catalog row. The gallery (ordered photos + primary ref) is
// a JSON column, mirroring the document storage of the store itself.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	StoreID     string    `json:"storeId" gorm:"index;type:text"`
	Title       string    `json:"title" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"index"`
	Gallery     string    `json:"gallery" gorm:"type:jsonb"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

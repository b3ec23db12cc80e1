package models

import "time"

// Store is the published storefront row. The full section document is kept
// as one JSON column; it round-trips losslessly through the codec in the
// root package.
type Store struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	Document    string    `json:"document" gorm:"type:jsonb"`
	PublishedAt time.Time `json:"publishedAt" gorm:"autoUpdateTime"`
}

// PublishLog records every publish of a store, newest last.
type PublishLog struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID  string    `json:"storeId" gorm:"index;type:text"`
	Document string    `json:"document" gorm:"type:jsonb"`
	CDate    time.Time `json:"cdate" gorm:"autoCreateTime"`
}

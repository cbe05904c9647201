package model

import "time"

// QuotaCounter is one (user, feature) daily counter. Date is the UTC day key
// the count belongs to.
type QuotaCounter struct {
	UserID    string    `gorm:"type:varchar(128);primaryKey" json:"userId"`
	Feature   string    `gorm:"type:varchar(64);primaryKey" json:"feature"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	Date      string    `gorm:"type:varchar(10);not null;default:''" json:"date"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (QuotaCounter) TableName() string {
	return "quota_counters"
}

package kv

import "time"

// Entry is one key of the device store.
type Entry struct {
	Name      string    `gorm:"column:name;primaryKey;size:255"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

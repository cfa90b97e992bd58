package model

import "time"

type User struct {
	Phone       string    `gorm:"type:varchar(32);primaryKey"`
	FirebaseUid string    `gorm:"type:varchar(128);not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	LastLogin   time.Time
}

func (User) TableName() string {
	return "users"
}

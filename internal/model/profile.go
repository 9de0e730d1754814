package model

import "time"

type Profile struct {
	ID        string    `gorm:"primaryKey;size:128"`
	Email     string    `gorm:"size:254;uniqueIndex;not null"`
	Role      Role      `gorm:"size:16;not null"`
	Name      string    `gorm:"size:120;not null"`
	Company   *string   `gorm:"size:120"`
	Phone     *string   `gorm:"size:32"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

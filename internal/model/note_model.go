package model

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	Id               string         `gorm:"type:varchar(64);primaryKey"`
	Title            string         `gorm:"type:varchar(255);not null"`
	Description      string         `gorm:"type:text"`
	Date             time.Time      `gorm:"type:timestamptz"`
	ButtonContent    string         `gorm:"type:varchar(255)"`
	ButtonUrl        string         `gorm:"type:varchar(2048)"`
	ShowCallToAction bool           `gorm:"not null;default:false"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}

package gormdb

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string      `gorm:"not null"`
	Blogs        []BlogModel `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

type BlogModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `gorm:"not null"`
	Author    string
	Url       string     `gorm:"not null"`
	Likes     int        `gorm:"not null"`
	UserId    uuid.UUID  `gorm:"type:uuid;index;not null"`
	User      *UserModel `gorm:"foreignKey:UserId"`
}

func (BlogModel) TableName() string {
	return "blogs"
}

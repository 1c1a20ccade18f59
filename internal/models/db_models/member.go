package db_models

const MemberLevelGeneral = "general"

type Member struct {
	BaseModel
	Account      string  `gorm:"size:100;uniqueIndex;not null"`
	Email        string  `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Name         string  `gorm:"size:100;not null"`
	Phone        *string `gorm:"size:20"`
	Level        string  `gorm:"column:member_level;size:20;not null"`
	IsActive     bool    `gorm:"not null"`
}

type Admin struct {
	BaseModel
	Account      string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:100;not null"`
	IsActive     bool   `gorm:"not null"`
}

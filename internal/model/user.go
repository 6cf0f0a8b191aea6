package model

import "time"

// User 账户主体；avatar 为对象存储 key（空串表示未设置）
type User struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"type:varchar(100);index:idx_user_name;not null"`
	Username    string `gorm:"type:varchar(50);uniqueIndex:ux_user_username;not null"`
	Email       string `gorm:"type:varchar(100);uniqueIndex:ux_user_email;not null"`
	Password    string `gorm:"type:varchar(100);not null"`
	Avatar      string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	SiteWeb     string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (User) TableName() string { return "users" }

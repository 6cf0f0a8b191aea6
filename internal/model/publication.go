package model

import "time"

// Publication 媒体发布（创建后不可变）；file_key 为对象存储 key
type Publication struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index:idx_pub_user_created;not null"`
	FileKey   string    `gorm:"type:varchar(255);not null"`
	TypeFile  string    `gorm:"type:varchar(16);not null"` // image, video, ...
	CreatedAt time.Time `gorm:"index:idx_pub_user_created"`
}

func (Publication) TableName() string { return "publications" }

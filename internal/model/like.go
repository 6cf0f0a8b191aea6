package model

import "time"

// Like 点赞（publication, user 对唯一）
type Like struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	PublicationID string `gorm:"type:varchar(36);index:idx_like_pub;index:idx_like_pair,unique;not null"`
	UserID        string `gorm:"type:varchar(36);not null;index:idx_like_pair,unique"`
	// 复合唯一键，避免重复点赞
	// idx_like_pair = (publication_id, user_id)
	CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }

package model

import "time"

// Comment 发布下的评论（只增不改）
type Comment struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	PublicationID string    `gorm:"type:varchar(36);index:idx_comment_pub;not null"`
	UserID        string    `gorm:"type:varchar(36);not null"`
	Body          string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"index:idx_comment_pub_created"`
}

func (Comment) TableName() string { return "comments" }

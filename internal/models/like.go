package models

import (
	"time"
)

// CommentLike 是评论点赞台账：每条记录代表一个设备对一条评论的点赞。
// (kind, comment_id, device_id) 唯一，存在即已赞，删除即取消。
type CommentLike struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Kind      CommentKind `gorm:"size:16;not null;uniqueIndex:idx_like_actor" json:"commentType"`
	CommentID uint        `gorm:"not null;uniqueIndex:idx_like_actor;index" json:"comment_id"`
	DeviceID  string      `gorm:"size:128;not null;uniqueIndex:idx_like_actor" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// PostLike 是文章级点赞计数器，没有设备维度，只有一个带符号的总数。
// 去重完全依赖客户端本地记录，这是与评论点赞路径的已知不对称。
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PostID    string    `gorm:"size:255;not null;uniqueIndex" json:"postId"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

package models

import (
	"time"
)

// CommentKind 区分评论来源：博客文章 or Telegram 频道镜像
type CommentKind string

const (
	KindBlog     CommentKind = "blog"
	KindTelegram CommentKind = "telegram"
)

// ParseCommentKind normalizes the client-supplied type tag. Anything
// that is not "telegram" is treated as a blog comment.
func ParseCommentKind(s string) CommentKind {
	if s == string(KindTelegram) {
		return KindTelegram
	}
	return KindBlog
}

// 评论审核状态
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusSpam     = "spam"
)

// ValidStatus reports whether s is one of the moderation states.
func ValidStatus(s string) bool {
	return s == StatusApproved || s == StatusPending || s == StatusSpam
}

type Comment struct {
	ID       uint        `gorm:"primaryKey" json:"-"`
	Kind     CommentKind `gorm:"size:16;not null;index:idx_comment_subject" json:"commentType"`
	Slug     string      `gorm:"size:255;not null;index:idx_comment_subject" json:"identifier"` // 文章 slug 或频道消息 ID
	Nickname string      `gorm:"size:100;not null" json:"nickname"`
	Email    string      `gorm:"size:255;not null" json:"email"`
	Website  string      `gorm:"size:255" json:"website,omitempty"`
	Avatar   string      `gorm:"size:512" json:"avatar,omitempty"`
	Content  string      `gorm:"type:text;not null" json:"content"` // 原始 Markdown
	HTML     string      `gorm:"type:text;not null" json:"html"`    // 渲染并消毒后的 HTML
	ParentID *uint       `gorm:"index" json:"-"`                    // Nullable for top-level comments
	IsAdmin  bool        `gorm:"default:false" json:"isAdmin"`
	Status   string      `gorm:"size:16;not null;default:approved" json:"status"`
	IP       string      `gorm:"size:64" json:"-"`
	UA       string      `gorm:"size:512" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

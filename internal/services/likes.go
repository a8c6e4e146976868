package services

import (
	"errors"
	"plume/internal/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeService 维护两类点赞：
// 评论点赞以 (kind, comment, device) 台账记录为真相，计数永远从台账重算；
// 文章点赞只有一个带符号的聚合计数器，没有设备身份，去重依赖客户端。
type LikeService interface {
	ToggleCommentLike(kind models.CommentKind, commentID uint, deviceID string) (liked bool, count int64, err error)
	AdjustPostLikes(postID string, delta int64) (int64, error)
	GetPostLikes(postID string) (int64, error)
}

type likeService struct {
	ledger commentLikeLedger
	db     *gorm.DB
}

func NewLikeService(db *gorm.DB) LikeService {
	return &likeService{ledger: gormLedger{db: db}, db: db}
}

// commentLikeLedger 是评论点赞台账的最小存储接口，
// 抽出来是为了让开关逻辑可以脱离 postgres 验证。
type commentLikeLedger interface {
	find(kind models.CommentKind, commentID uint, deviceID string) (*models.CommentLike, error)
	insert(like *models.CommentLike) error
	remove(id uint) error
	count(kind models.CommentKind, commentID uint) (int64, error)
}

// ToggleCommentLike 开关语义：已有记录则删除(取消赞)，否则插入(点赞)。
// 每次都从台账重算总数——台账本身就是真相源，没有独立计数字段可信。
func (s *likeService) ToggleCommentLike(kind models.CommentKind, commentID uint, deviceID string) (bool, int64, error) {
	return toggleLike(s.ledger, kind, commentID, deviceID)
}

func toggleLike(ledger commentLikeLedger, kind models.CommentKind, commentID uint, deviceID string) (bool, int64, error) {
	existing, err := ledger.find(kind, commentID, deviceID)
	if err != nil {
		return false, 0, err
	}

	liked := existing == nil
	if existing != nil {
		if err := ledger.remove(existing.ID); err != nil {
			return false, 0, err
		}
	} else {
		if err := ledger.insert(&models.CommentLike{
			Kind:      kind,
			CommentID: commentID,
			DeviceID:  deviceID,
		}); err != nil {
			return false, 0, err
		}
	}

	count, err := ledger.count(kind, commentID)
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

// AdjustPostLikes 原子地把文章点赞计数加上 delta，首次使用时惰性建档。
// 返回更新后的存量值；存量不做非负收敛，对外回显时才截断到 0
// (见 DESIGN.md 中关于 clamp 的决定)。
func (s *likeService) AdjustPostLikes(postID string, delta int64) (int64, error) {
	now := time.Now()
	pl := models.PostLike{
		PostID:    postID,
		Likes:     delta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"likes":      gorm.Expr("post_likes.likes + EXCLUDED.likes"),
				"updated_at": now,
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "likes"}}},
	).Create(&pl).Error
	if err != nil {
		return 0, err
	}
	return pl.Likes, nil
}

// GetPostLikes 返回文章当前点赞数，从未点过赞的文章返回 0
func (s *likeService) GetPostLikes(postID string) (int64, error) {
	var pl models.PostLike
	err := s.db.Where("post_id = ?", postID).Take(&pl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return pl.Likes, nil
}

// gormLedger 是台账接口的 postgres 实现
type gormLedger struct {
	db *gorm.DB
}

func (g gormLedger) find(kind models.CommentKind, commentID uint, deviceID string) (*models.CommentLike, error) {
	var like models.CommentLike
	err := g.db.Where("kind = ? AND comment_id = ? AND device_id = ?", kind, commentID, deviceID).
		Take(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (g gormLedger) insert(like *models.CommentLike) error {
	return g.db.Create(like).Error
}

func (g gormLedger) remove(id uint) error {
	return g.db.Delete(&models.CommentLike{}, id).Error
}

func (g gormLedger) count(kind models.CommentKind, commentID uint) (int64, error) {
	var n int64
	err := g.db.Model(&models.CommentLike{}).
		Where("kind = ? AND comment_id = ?", kind, commentID).
		Count(&n).Error
	return n, err
}

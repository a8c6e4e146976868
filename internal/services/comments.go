package services

import (
	"plume/internal/models"
	"plume/internal/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CommentView 是公开评论列表里的单条评论：
// 数据库记录 + 对外 ID + 点赞聚合。
type CommentView struct {
	ID string `json:"id"`
	models.Comment
	Parent  *string `json:"parent"`
	Likes   int64   `json:"likes"`
	IsLiked bool    `json:"isLiked"`
}

// AdminComment 是后台列表里的单条评论，额外暴露来源元数据和纯文本摘要
type AdminComment struct {
	ID string `json:"id"`
	models.Comment
	Parent  *string `json:"parent"`
	IP      string  `json:"ip,omitempty"`
	UA      string  `json:"ua,omitempty"`
	Excerpt string  `json:"excerpt"`
}

// AuthorInfo 评论作者身份：管理员档案或访客提交的昵称/邮箱
type AuthorInfo struct {
	Nickname string
	Email    string
	Website  string
	Avatar   string
	IsAdmin  bool
}

// CreateCommentInput 创建评论的全部输入
type CreateCommentInput struct {
	Kind     models.CommentKind
	Slug     string
	Content  string // 原始 Markdown
	ParentID *uint
	Author   AuthorInfo
	IP       string
	UA       string
}

// AdminListFilter 后台评论筛选条件，零值字段表示不过滤
type AdminListFilter struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	Slug      string // subject 精确匹配
	Search    string // 昵称/邮箱子串，不区分大小写
	IsAdmin   *bool
	IP        string
}

// CommentService 管理父子链接的评论树
type CommentService interface {
	ListBySubject(kind models.CommentKind, slug, deviceID string) ([]CommentView, error)
	Create(in CreateCommentInput) (*CommentView, error)
	CascadeDelete(kind models.CommentKind, id uint) (comments, likes int64, err error)
	SetAdminFlag(kind models.CommentKind, id uint, isAdmin bool) error
	SetStatus(kind models.CommentKind, id uint, status string) error
	AdminList(kind models.CommentKind, f AdminListFilter) ([]AdminComment, int64, error)
}

type commentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) CommentService {
	return &commentService{db: db}
}

// ListBySubject 返回某个 subject 下的全部可见评论，按创建时间升序，
// 并为每条评论解析点赞数和 deviceID 是否已赞。spam 状态的评论不外露。
func (s *commentService) ListBySubject(kind models.CommentKind, slug, deviceID string) ([]CommentView, error) {
	var comments []models.Comment
	err := s.db.
		Where("kind = ? AND slug = ? AND status <> ?", kind, slug, models.StatusSpam).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	// 一次查出全部点赞记录，在内存里聚合，避免 N+1
	var likes []models.CommentLike
	if err := s.db.Where("kind = ? AND comment_id IN ?", kind, ids).Find(&likes).Error; err != nil {
		return nil, err
	}

	likeCounts := make(map[uint]int64, len(likes))
	liked := make(map[uint]bool)
	for _, l := range likes {
		likeCounts[l.CommentID]++
		if deviceID != "" && l.DeviceID == deviceID {
			liked[l.CommentID] = true
		}
	}

	for _, c := range comments {
		views = append(views, CommentView{
			ID:      utils.EncodeID(c.ID),
			Comment: c,
			Parent:  encodeParent(c.ParentID),
			Likes:   likeCounts[c.ID],
			IsLiked: liked[c.ID],
		})
	}
	return views, nil
}

// Create 渲染并消毒 Markdown 后落库。父评论无效时退化为根评论。
func (s *commentService) Create(in CreateCommentInput) (*CommentView, error) {
	if strings.TrimSpace(in.Slug) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, ErrMissingField
	}
	if !in.Author.IsAdmin && (strings.TrimSpace(in.Author.Nickname) == "" || strings.TrimSpace(in.Author.Email) == "") {
		return nil, ErrMissingAuthorInfo
	}

	parent, err := resolveParent(in.ParentID, func(id uint) (bool, error) {
		var count int64
		err := s.db.Model(&models.Comment{}).
			Where("id = ? AND kind = ? AND slug = ?", id, in.Kind, in.Slug).
			Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Kind:     in.Kind,
		Slug:     in.Slug,
		Nickname: in.Author.Nickname,
		Email:    in.Author.Email,
		Website:  in.Author.Website,
		Avatar:   in.Author.Avatar,
		Content:  in.Content,
		HTML:     utils.RenderMarkdown(in.Content),
		ParentID: parent,
		IsAdmin:  in.Author.IsAdmin,
		Status:   models.StatusApproved,
		IP:       in.IP,
		UA:       in.UA,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &CommentView{
		ID:      utils.EncodeID(comment.ID),
		Comment: comment,
		Parent:  encodeParent(comment.ParentID),
	}, nil
}

// resolveParent 只有父评论确认存在时才保留，不存在则退化为根评论。
// 存在性查询失败必须上抛：不能把一条合法回复静默落成根评论。
func resolveParent(parentID *uint, exists func(id uint) (bool, error)) (*uint, error) {
	if parentID == nil {
		return nil, nil
	}
	ok, err := exists(*parentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return parentID, nil
}

// CascadeDelete 删除评论及其全部后代，再清理引用它们的点赞记录。
// 两次批量删除之间没有事务：中间崩溃会留下孤儿点赞记录，属于
// 已声明接受的缺口，由将来的对账任务兜底。
func (s *commentService) CascadeDelete(kind models.CommentKind, id uint) (int64, int64, error) {
	var exists int64
	if err := s.db.Model(&models.Comment{}).Where("id = ? AND kind = ?", id, kind).Count(&exists).Error; err != nil {
		return 0, 0, err
	}
	if exists == 0 {
		return 0, 0, ErrNotFound
	}

	ids, err := collectSubtree(id, func(parents []uint) ([]uint, error) {
		var childIDs []uint
		err := s.db.Model(&models.Comment{}).
			Where("kind = ? AND parent_id IN ?", kind, parents).
			Pluck("id", &childIDs).Error
		return childIDs, err
	})
	if err != nil {
		return 0, 0, err
	}

	res := s.db.Where("kind = ? AND id IN ?", kind, ids).Delete(&models.Comment{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	deletedComments := res.RowsAffected

	res = s.db.Where("kind = ? AND comment_id IN ?", kind, ids).Delete(&models.CommentLike{})
	if res.Error != nil {
		return deletedComments, 0, res.Error
	}
	return deletedComments, res.RowsAffected, nil
}

// SetAdminFlag 标记/取消标记评论为管理员发言
func (s *commentService) SetAdminFlag(kind models.CommentKind, id uint, isAdmin bool) error {
	res := s.db.Model(&models.Comment{}).
		Where("id = ? AND kind = ?", id, kind).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus 审核状态流转：approved / pending / spam
func (s *commentService) SetStatus(kind models.CommentKind, id uint, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	res := s.db.Model(&models.Comment{}).
		Where("id = ? AND kind = ?", id, kind).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// adminQuery 组装筛选条件，计数和取页各用一条新查询
func (s *commentService) adminQuery(kind models.CommentKind, f AdminListFilter) *gorm.DB {
	q := s.db.Model(&models.Comment{}).Where("kind = ?", kind)
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if f.Slug != "" {
		q = q.Where("slug = ?", f.Slug)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("nickname ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if f.IsAdmin != nil {
		q = q.Where("is_admin = ?", *f.IsAdmin)
	}
	if f.IP != "" {
		q = q.Where("ip = ?", f.IP)
	}
	return q
}

// AdminList 跨 subject 的后台分页列表，按创建时间倒序，同时返回总数
func (s *commentService) AdminList(kind models.CommentKind, f AdminListFilter) ([]AdminComment, int64, error) {
	page := utils.ClampPage(f.Page)
	limit := utils.ClampLimit(f.Limit)

	var total int64
	if err := s.adminQuery(kind, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := s.adminQuery(kind, f).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, AdminComment{
			ID:      utils.EncodeID(c.ID),
			Comment: c,
			Parent:  encodeParent(c.ParentID),
			IP:      c.IP,
			UA:      c.UA,
			Excerpt: utils.ExtractText(c.HTML, 120),
		})
	}
	return out, total, nil
}

func encodeParent(parentID *uint) *string {
	if parentID == nil {
		return nil
	}
	s := utils.EncodeID(*parentID)
	return &s
}

package services

import (
	"errors"
	"plume/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 校验发生在任何存储访问之前，可以用空 db 直接测
func TestCreateValidation(t *testing.T) {
	s := &commentService{db: nil}

	guest := AuthorInfo{Nickname: "Bob", Email: "bob@x.com"}

	_, err := s.Create(CreateCommentInput{Kind: models.KindBlog, Slug: "", Content: "hi", Author: guest})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = s.Create(CreateCommentInput{Kind: models.KindBlog, Slug: "post-1", Content: "  ", Author: guest})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = s.Create(CreateCommentInput{
		Kind: models.KindBlog, Slug: "post-1", Content: "hi",
		Author: AuthorInfo{Nickname: "Bob"},
	})
	assert.ErrorIs(t, err, ErrMissingAuthorInfo)

	_, err = s.Create(CreateCommentInput{
		Kind: models.KindBlog, Slug: "post-1", Content: "hi",
		Author: AuthorInfo{Email: "bob@x.com"},
	})
	assert.ErrorIs(t, err, ErrMissingAuthorInfo)
}

func TestResolveParent(t *testing.T) {
	parent := uint(7)

	// 无父评论：不触发存在性查询
	got, err := resolveParent(nil, func(uint) (bool, error) {
		t.Fatal("exists should not be called for a root comment")
		return false, nil
	})
	assert.NoError(t, err)
	assert.Nil(t, got)

	// 父评论存在：保留
	got, err = resolveParent(&parent, func(id uint) (bool, error) {
		assert.Equal(t, parent, id)
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, &parent, got)

	// 父评论不存在：退化为根评论
	got, err = resolveParent(&parent, func(uint) (bool, error) { return false, nil })
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// 存在性查询失败必须上抛，而不是把回复静默落成根评论
func TestResolveParentLookupFailure(t *testing.T) {
	parent := uint(7)
	errDown := errors.New("connection reset")

	got, err := resolveParent(&parent, func(uint) (bool, error) { return false, errDown })
	assert.ErrorIs(t, err, errDown)
	assert.Nil(t, got)
}

func TestParseCommentKind(t *testing.T) {
	assert.Equal(t, models.KindTelegram, models.ParseCommentKind("telegram"))
	assert.Equal(t, models.KindBlog, models.ParseCommentKind("blog"))
	// 未知类型一律按博客评论处理
	assert.Equal(t, models.KindBlog, models.ParseCommentKind("weird"))
	assert.Equal(t, models.KindBlog, models.ParseCommentKind(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, models.ValidStatus(models.StatusApproved))
	assert.True(t, models.ValidStatus(models.StatusPending))
	assert.True(t, models.ValidStatus(models.StatusSpam))
	assert.False(t, models.ValidStatus("deleted"))
	assert.False(t, models.ValidStatus(""))
}

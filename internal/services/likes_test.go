package services

import (
	"plume/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

// memLedger 内存台账，验证开关语义不需要 postgres
type memLedger struct {
	seq  uint
	rows map[uint]models.CommentLike
}

func newMemLedger() *memLedger {
	return &memLedger{rows: map[uint]models.CommentLike{}}
}

func (m *memLedger) find(kind models.CommentKind, commentID uint, deviceID string) (*models.CommentLike, error) {
	for _, row := range m.rows {
		if row.Kind == kind && row.CommentID == commentID && row.DeviceID == deviceID {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memLedger) insert(like *models.CommentLike) error {
	m.seq++
	like.ID = m.seq
	m.rows[like.ID] = *like
	return nil
}

func (m *memLedger) remove(id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memLedger) count(kind models.CommentKind, commentID uint) (int64, error) {
	var n int64
	for _, row := range m.rows {
		if row.Kind == kind && row.CommentID == commentID {
			n++
		}
	}
	return n, nil
}

func TestToggleLikeSymmetry(t *testing.T) {
	ledger := newMemLedger()

	liked, count, err := toggleLike(ledger, models.KindBlog, 7, "dev-1")
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	// 同一设备再来一次，回到原始状态
	liked, count, err = toggleLike(ledger, models.KindBlog, 7, "dev-1")
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeMultipleActors(t *testing.T) {
	ledger := newMemLedger()

	liked, count, _ := toggleLike(ledger, models.KindBlog, 7, "dev-1")
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, _ = toggleLike(ledger, models.KindBlog, 7, "dev-2")
	assert.True(t, liked)
	assert.Equal(t, int64(2), count)

	// dev-1 取消赞，dev-2 的赞保留
	liked, count, _ = toggleLike(ledger, models.KindBlog, 7, "dev-1")
	assert.False(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeIsolatedByKindAndComment(t *testing.T) {
	ledger := newMemLedger()

	toggleLike(ledger, models.KindBlog, 7, "dev-1")
	toggleLike(ledger, models.KindTelegram, 7, "dev-1")
	toggleLike(ledger, models.KindBlog, 8, "dev-1")

	_, count, _ := toggleLike(ledger, models.KindBlog, 7, "dev-2")
	assert.Equal(t, int64(2), count)

	n, _ := ledger.count(models.KindTelegram, 7)
	assert.Equal(t, int64(1), n)
	n, _ = ledger.count(models.KindBlog, 8)
	assert.Equal(t, int64(1), n)
}

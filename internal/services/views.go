package services

import (
	"errors"
	"fmt"
	"plume/internal/models"
	"plume/internal/utils"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyPoint 单日全站浏览量
type DailyPoint struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// ViewRecord 一次浏览记录后的两个计数器新值
type ViewRecord struct {
	Slug       string `json:"slug"`
	TotalViews int64  `json:"totalViews"`
	DailyViews int64  `json:"dailyViews"`
	Date       string `json:"date"`
}

// ViewService 浏览量计数器：按 slug 的文章总量 + 按东八区日期的全站日量。
// 计数器本身不做去重，重试下 at-least-once；去重是调用方的职责。
type ViewService interface {
	Record(slug string) (*ViewRecord, error)
	Total(slug string) (int64, error)
	DailySeries(days int) ([]DailyPoint, error)
}

type viewService struct {
	db *gorm.DB
}

func NewViewService(db *gorm.DB) ViewService {
	return &viewService{db: db}
}

// Record 两次独立的原子自增：先文章总量，后当日全站量。
// 两者之间没有事务，中间崩溃会导致只加了一边，属于接受的缺口。
func (s *viewService) Record(slug string) (*ViewRecord, error) {
	now := time.Now()
	dateKey := utils.DateKey(now)

	pv := models.PostView{Slug: slug, Views: 1, CreatedAt: now, UpdatedAt: now}
	err := s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"views":      gorm.Expr("post_views.views + 1"),
				"updated_at": now,
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "views"}}},
	).Create(&pv).Error
	if err != nil {
		return nil, err
	}

	dv := models.DailyView{Date: dateKey, Views: 1, CreatedAt: now, UpdatedAt: now}
	err = s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"views":      gorm.Expr("daily_views.views + 1"),
				"updated_at": now,
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "views"}}},
	).Create(&dv).Error
	if err != nil {
		return nil, err
	}

	return &ViewRecord{
		Slug:       slug,
		TotalViews: pv.Views,
		DailyViews: dv.Views,
		Date:       dateKey,
	}, nil
}

// Total 返回文章总浏览量，从未被浏览的文章返回 0
func (s *viewService) Total(slug string) (int64, error) {
	var pv models.PostView
	err := s.db.Where("slug = ?", slug).Take(&pv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return pv.Views, nil
}

// DailySeries 返回最近 days 天的日浏览量，按日期升序，最多一年。
// 结果是后台图表用的聚合读，短暂过期无碍，走本地 TTL 缓存。
func (s *viewService) DailySeries(days int) ([]DailyPoint, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	cacheKey := fmt.Sprintf("views:daily:%d", days)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if points, ok := cached.([]DailyPoint); ok {
			return points, nil
		}
	}

	// 取最近的 365 个桶再反转为升序
	var rows []models.DailyView
	err := s.db.Order("date DESC").Limit(365).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]DailyPoint, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		points = append(points, DailyPoint{Date: rows[i].Date, Views: rows[i].Views})
	}
	if len(points) > days {
		points = points[len(points)-days:]
	}

	utils.GetCache().Set(cacheKey, points, time.Minute)
	return points, nil
}

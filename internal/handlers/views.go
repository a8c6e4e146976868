package handlers

import (
	"net/http"
	"plume/internal/services"
	"plume/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type ViewHandler struct {
	views services.ViewService
}

func NewViewHandler(views services.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// GetTotal 处理 GET /api/views?slug=
func (h *ViewHandler) GetTotal(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 slug 参数"})
		return
	}

	total, err := h.views.Total(slug)
	if err != nil {
		serverError(c, "post_views_get_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": slug, "totalViews": total})
}

type recordViewRequest struct {
	Slug string `json:"slug"`
}

// Record 处理 POST /api/views：
// 文章总量 +1，当日(东八区)全站量 +1。计数 at-least-once，去重在前端。
func (h *ViewHandler) Record(c *gin.Context) {
	var req recordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Slug == "" {
		badRequest(c, "缺少 slug 参数")
		return
	}

	rec, err := h.views.Record(req.Slug)
	if err != nil {
		serverError(c, "post_views_record_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"slug":       rec.Slug,
		"totalViews": rec.TotalViews,
		"dailyViews": rec.DailyViews,
		"date":       rec.Date,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// DailySeries 处理 GET /api/admin/daily-views?days=，管理员专用
func (h *ViewHandler) DailySeries(c *gin.Context) {
	days := utils.StringToInt(c.Query("days"), 30)

	points, err := h.views.DailySeries(days)
	if err != nil {
		serverError(c, "daily_views_get_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": points})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/services"
	"plume/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments services.CommentService
}

func NewCommentHandler(comments services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List 处理 GET /api/comments：
// 带 identifier 时返回该 subject 下的公开评论；
// 不带 identifier 时走后台路由，需要管理员身份，返回跨 subject 的分页列表。
func (h *CommentHandler) List(c *gin.Context) {
	identifier := c.Query("identifier")
	kind := models.ParseCommentKind(c.Query("commentType"))

	if identifier == "" {
		h.adminList(c, kind)
		return
	}

	deviceID := c.Query("deviceId")
	views, err := h.comments.ListBySubject(kind, identifier, deviceID)
	if err != nil {
		serverError(c, "comments_public_get_failed", c.Request.URL.String(), err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *CommentHandler) adminList(c *gin.Context, kind models.CommentKind) {
	if middleware.GetAdmin(c) == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: Admin access required."})
		return
	}

	filter := services.AdminListFilter{
		Page:   utils.ClampPage(utils.StringToInt(c.Query("page"), 1)),
		Limit:  utils.ClampLimit(utils.StringToInt(c.Query("limit"), 20)),
		Slug:   c.Query("postId"),
		Search: c.Query("search"),
		IP:     c.Query("ipAddress"),
	}
	if v := c.Query("dateFrom"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("dateTo"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// 截止日期取当天末尾，让区间对用户是闭区间
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}
	if v := c.Query("isAdmin"); v != "" {
		isAdmin := v == "true"
		filter.IsAdmin = &isAdmin
	}

	comments, total, err := h.comments.AdminList(kind, filter)
	if err != nil {
		serverError(c, "comments_admin_get_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
}

type createCommentRequest struct {
	Identifier  string `json:"identifier"`
	CommentType string `json:"commentType"`
	Content     string `json:"content"`
	ParentID    string `json:"parentId"`
	UserInfo    *struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		Website  string `json:"website"`
		Avatar   string `json:"avatar"`
	} `json:"userInfo"`
}

// Create 处理 POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "缺少必要参数")
		return
	}
	if req.Identifier == "" || req.Content == "" {
		badRequest(c, "缺少必要参数")
		return
	}

	var author services.AuthorInfo
	if admin := middleware.GetAdmin(c); admin != nil {
		// 管理员身份来自已验证的 cookie，署名用站长档案
		author = services.AuthorInfo{
			Nickname: admin.Nickname,
			Email:    admin.Email,
			Website:  admin.Website,
			Avatar:   admin.Avatar,
			IsAdmin:  true,
		}
	} else {
		if req.UserInfo == nil || req.UserInfo.Nickname == "" || req.UserInfo.Email == "" {
			badRequest(c, "普通用户需要提供用户信息")
			return
		}
		author = services.AuthorInfo{
			Nickname: req.UserInfo.Nickname,
			Email:    req.UserInfo.Email,
			Website:  req.UserInfo.Website,
			Avatar:   req.UserInfo.Avatar, // 前端已生成好头像 URL
		}
	}

	// 父评论 ID 解不开就当根评论处理，不视为客户端错误
	var parentID *uint
	if req.ParentID != "" {
		if id, err := utils.DecodeID(req.ParentID); err == nil {
			parentID = &id
		}
	}

	view, err := h.comments.Create(services.CreateCommentInput{
		Kind:     models.ParseCommentKind(req.CommentType),
		Slug:     req.Identifier,
		Content:  req.Content,
		ParentID: parentID,
		Author:   author,
		IP:       utils.ClientIP(c.Request),
		UA:       utils.UserAgent(c.Request),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			badRequest(c, "缺少必要参数")
		case errors.Is(err, services.ErrMissingAuthorInfo):
			badRequest(c, "普通用户需要提供用户信息")
		default:
			serverError(c, "comments_post_failed", c.Request.URL.String(), err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": view})
}

type deleteCommentRequest struct {
	CommentID   string `json:"commentId"`
	CommentType string `json:"commentType"`
}

// Delete 处理 DELETE /api/comments：级联删除评论子树及其点赞记录。
// 仅管理员可用，由路由分组上的 AdminRequired 把守。
func (h *CommentHandler) Delete(c *gin.Context) {
	var req deleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.CommentType == "" {
		badRequest(c, "Missing commentId or commentType")
		return
	}

	id, err := utils.DecodeID(req.CommentID)
	if err != nil {
		badRequest(c, "无效的 commentId")
		return
	}

	deletedComments, deletedLikes, err := h.comments.CascadeDelete(models.ParseCommentKind(req.CommentType), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "评论不存在")
			return
		}
		serverError(c, "comments_delete_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         fmt.Sprintf("Deleted %d comment(s) and %d like(s).", deletedComments, deletedLikes),
		"deletedComments": deletedComments,
		"deletedLikes":    deletedLikes,
	})
}

type setFlagRequest struct {
	CommentID   string `json:"commentId"`
	CommentType string `json:"commentType"`
	IsAdmin     *bool  `json:"isAdmin"`
}

// SetFlag 处理 PUT /api/comments/flag：标记评论为管理员发言
func (h *CommentHandler) SetFlag(c *gin.Context) {
	var req setFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.IsAdmin == nil {
		badRequest(c, "Missing commentId or isAdmin")
		return
	}

	id, err := utils.DecodeID(req.CommentID)
	if err != nil {
		badRequest(c, "无效的 commentId")
		return
	}

	if err := h.comments.SetAdminFlag(models.ParseCommentKind(req.CommentType), id, *req.IsAdmin); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "评论不存在")
			return
		}
		serverError(c, "comments_flag_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setStatusRequest struct {
	CommentID   string `json:"commentId"`
	CommentType string `json:"commentType"`
	Status      string `json:"status"`
}

// SetStatus 处理 PUT /api/comments/status：审核状态流转
func (h *CommentHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.Status == "" {
		badRequest(c, "Missing commentId or status")
		return
	}

	id, err := utils.DecodeID(req.CommentID)
	if err != nil {
		badRequest(c, "无效的 commentId")
		return
	}

	if err := h.comments.SetStatus(models.ParseCommentKind(req.CommentType), id, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			badRequest(c, "无效的 status")
		case errors.Is(err, services.ErrNotFound):
			notFound(c, "评论不存在")
		default:
			serverError(c, "comments_status_failed", c.Request.URL.String(), err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"net/http"
	"plume/internal/models"
	"plume/internal/services"
	"plume/internal/utils"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likes services.LikeService
}

func NewLikeHandler(likes services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

type toggleCommentLikeRequest struct {
	CommentID   string `json:"commentId"`
	CommentType string `json:"commentType"`
	DeviceID    string `json:"deviceId"`
}

// ToggleCommentLike 处理 POST /api/comments/like：
// 同一设备对同一评论的第二次调用会取消点赞，并总是回传台账重算的总数。
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	var req toggleCommentLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.CommentID == "" || req.DeviceID == "" || req.CommentType == "" {
		badRequest(c, "缺少必要参数")
		return
	}

	id, err := utils.DecodeID(req.CommentID)
	if err != nil {
		badRequest(c, "无效的 commentId")
		return
	}

	liked, count, err := h.likes.ToggleCommentLike(models.ParseCommentKind(req.CommentType), id, req.DeviceID)
	if err != nil {
		serverError(c, "comment_like_toggle_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"likes":   count,
		"isLiked": liked,
	})
}

// GetPostLikes 处理 GET /api/like?postId=
func (h *LikeHandler) GetPostLikes(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 postId"})
		return
	}

	count, err := h.likes.GetPostLikes(postID)
	if err != nil {
		serverError(c, "post_like_get_failed", c.Request.URL.String(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likeCount": count})
}

type adjustPostLikesRequest struct {
	PostID string `json:"postId"`
	Delta  *int64 `json:"delta"`
}

// AdjustPostLikes 处理 POST /api/like：按 delta 调整文章点赞总数。
// 这条路径没有设备身份，靠客户端本地记录去重；delta 限定 ±1。
func (h *LikeHandler) AdjustPostLikes(c *gin.Context) {
	var req adjustPostLikesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == "" || req.Delta == nil {
		badRequest(c, "缺少 postId 或非法的 delta")
		return
	}
	if *req.Delta != 1 && *req.Delta != -1 {
		badRequest(c, "缺少 postId 或非法的 delta")
		return
	}

	stored, err := h.likes.AdjustPostLikes(req.PostID, *req.Delta)
	if err != nil {
		serverError(c, "post_like_adjust_failed", c.Request.URL.String(), err)
		return
	}

	// 存量不截断，只有回显值收敛到非负 (见 DESIGN.md)
	echoed := stored
	if echoed < 0 {
		echoed = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"likeCount": echoed,
	})
}

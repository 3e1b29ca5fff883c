package handler

import (
	"bedtime-story-api/internal/domain/repository"
	"bedtime-story-api/internal/interfaces/http/dto"
	"bedtime-story-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetMe 当前用户信息
// @Summary 获取当前登录用户
// @Tags User
// @Produce json
// @Success 200 {object} dto.Response[dto.AuthUserDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, c.GetString("user_id"))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to load user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToAuthUserDTO(user))
}

package handler

import (
	"bedtime-story-api/internal/application/story"
	"bedtime-story-api/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// TaleHandler 经典童话目录处理器
type TaleHandler struct {
	svc *story.Service
}

// NewTaleHandler 创建童话目录处理器
func NewTaleHandler(svc *story.Service) *TaleHandler {
	return &TaleHandler{svc: svc}
}

// List 童话目录
// @Summary 经典童话目录
// @Description 返回可选的经典童话列表，含 surprise 占位条目
// @Tags Tale
// @Produce json
// @Success 200 {object} dto.Response[[]dto.TaleDTO]
// @Router /v1/tales [get]
func (h *TaleHandler) List(c *gin.Context) {
	tales := h.svc.Tales(c.Request.Context())
	dto.Success(c, dto.ToTaleDTOs(tales))
}

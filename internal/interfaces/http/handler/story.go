package handler

import (
	"bedtime-story-api/internal/application/story"
	"bedtime-story-api/internal/domain/entity"
	"bedtime-story-api/internal/domain/repository"
	"bedtime-story-api/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// StoryHandler 故事处理器
type StoryHandler struct {
	svc *story.Service
}

// NewStoryHandler 创建故事处理器
func NewStoryHandler(svc *story.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Generate 生成故事
// @Summary 生成睡前故事
// @Description 根据模式、时长、语言和个性化设置生成一篇睡前故事
// @Tags Story
// @Accept json
// @Produce json
// @Param body body dto.GenerateStoryRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.GenerateStoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/stories/generate [post]
func (h *StoryHandler) Generate(c *gin.Context) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	language := req.Language
	if language == "" {
		language = story.NativeLanguage
	}

	out, err := h.svc.Generate(c.Request.Context(), &story.GenerateInput{
		Mode:            entity.StoryMode(req.Mode),
		DurationMinutes: req.DurationMinutes,
		Modification:    req.Modification,
		Language:        language,
		Settings:        req.Personalization.ToEntity(),
		TaleID:          req.TaleID,
	})
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.Success(c, &dto.GenerateStoryResponse{
		Title:     out.Title,
		Body:      out.Body,
		Language:  out.Language,
		Mode:      string(out.Mode),
		TaleID:    out.TaleID,
		TaleTitle: out.TaleTitle,
	})
}

// Save 收藏故事
// @Summary 收藏故事
// @Tags Story
// @Accept json
// @Produce json
// @Param body body dto.SaveStoryRequest true "故事内容"
// @Success 201 {object} dto.Response[dto.StoryDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/stories [post]
func (h *StoryHandler) Save(c *gin.Context) {
	var req dto.SaveStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), c.GetString("user_id"), &story.SaveInput{
		Title:    req.Title,
		Body:     req.Body,
		Language: req.Language,
		Mode:     entity.StoryMode(req.Mode),
		Rating:   req.Rating,
	})
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.Created(c, dto.ToStoryDTO(saved))
}

// List 故事列表
// @Summary 收藏故事列表
// @Description 返回当前用户收藏的故事，最近保存的在前
// @Tags Story
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.StoryDTO]
// @Router /v1/stories [get]
func (h *StoryHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BadRequest(c, "invalid query: "+err.Error())
		return
	}

	pagination := repository.NewPagination(query.Page, query.PageSize)
	result, err := h.svc.List(c.Request.Context(), c.GetString("user_id"), pagination)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToStoryDTOs(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, result.Total))
}

// UpdateRating 更新评分
// @Summary 更新收藏故事的评分
// @Tags Story
// @Accept json
// @Produce json
// @Param id path string true "故事 ID"
// @Param body body dto.UpdateRatingRequest true "评分"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{id}/rating [patch]
func (h *StoryHandler) UpdateRating(c *gin.Context) {
	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	err := h.svc.UpdateRating(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Rating)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.NoContent(c)
}

// Delete 删除收藏
// @Summary 删除收藏的故事
// @Tags Story
// @Param id path string true "故事 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{id} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.NoContent(c)
}

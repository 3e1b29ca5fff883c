package dto

import (
	"time"

	"bedtime-story-api/internal/domain/entity"
)

// PersonalizationDTO 个性化设置
//
// tones/topics 字段宽松解析：历史客户端可能发送字符串或
// 混入非字符串元素，解析失败按缺失处理
type PersonalizationDTO struct {
	Tones      entity.StringList `json:"tones"`
	ToneCustom string            `json:"tone_custom"`
	Topics     entity.StringList `json:"topics"`
	ChildName  string            `json:"child_name"`
	ChildAge   int               `json:"child_age" binding:"omitempty,min=1,max=18"`
}

// ToEntity 转换为领域设置对象
func (p *PersonalizationDTO) ToEntity() *entity.PersonalizationSettings {
	if p == nil {
		return nil
	}
	return &entity.PersonalizationSettings{
		Tones:      p.Tones,
		ToneCustom: p.ToneCustom,
		Topics:     p.Topics,
		ChildName:  p.ChildName,
		ChildAge:   p.ChildAge,
	}
}

// GenerateStoryRequest 故事生成请求
type GenerateStoryRequest struct {
	Mode            string              `json:"mode" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,min=1,max=60"`
	Modification    string              `json:"modification"`
	Language        string              `json:"language"`
	TaleID          string              `json:"tale_id"`
	Personalization *PersonalizationDTO `json:"personalization"`
}

// GenerateStoryResponse 故事生成响应
type GenerateStoryResponse struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Language  string `json:"language"`
	Mode      string `json:"mode"`
	TaleID    string `json:"tale_id,omitempty"`
	TaleTitle string `json:"tale_title,omitempty"`
}

// SaveStoryRequest 收藏故事请求
type SaveStoryRequest struct {
	Title    string `json:"title" binding:"max=256"`
	Body     string `json:"body" binding:"required"`
	Language string `json:"language"`
	Mode     string `json:"mode"`
	Rating   int    `json:"rating" binding:"required"`
}

// UpdateRatingRequest 更新评分请求
type UpdateRatingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// StoryDTO 收藏故事
type StoryDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	Mode      string    `json:"mode"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ToStoryDTO 将领域实体转换为 DTO
func ToStoryDTO(s *entity.Story) *StoryDTO {
	if s == nil {
		return nil
	}
	return &StoryDTO{
		ID:        s.ID,
		Title:     s.Title,
		Body:      s.Body,
		Language:  s.Language,
		Mode:      string(s.Mode),
		Rating:    s.Rating,
		CreatedAt: s.CreatedAt,
	}
}

// ToStoryDTOs 批量转换
func ToStoryDTOs(stories []*entity.Story) []*StoryDTO {
	out := make([]*StoryDTO, 0, len(stories))
	for _, s := range stories {
		out = append(out, ToStoryDTO(s))
	}
	return out
}

package dto

import (
	"bedtime-story-api/internal/domain/entity"
)

// TaleDTO 经典童话目录条目
type TaleDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ToTaleDTOs 将目录条目转换为 DTO 列表
func ToTaleDTOs(tales []entity.ClassicTale) []*TaleDTO {
	out := make([]*TaleDTO, 0, len(tales))
	for _, t := range tales {
		out = append(out, &TaleDTO{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
		})
	}
	return out
}

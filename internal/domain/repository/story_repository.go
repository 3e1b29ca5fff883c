// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"bedtime-story-api/internal/domain/entity"
)

// StoryRepository 收藏故事仓储接口
type StoryRepository interface {
	// Create 保存故事
	Create(ctx context.Context, story *entity.Story) error

	// GetByID 根据 ID 获取故事
	GetByID(ctx context.Context, id string) (*entity.Story, error)

	// ListByUser 获取用户的故事列表（最近保存的在前）
	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.Story], error)

	// UpdateRating 更新故事评分
	UpdateRating(ctx context.Context, id string, rating int) error

	// Delete 删除故事
	Delete(ctx context.Context, id string) error
}

// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoryMode 故事生成模式
type StoryMode string

const (
	// StoryModeOriginal 完全原创的故事
	StoryModeOriginal StoryMode = "original"
	// StoryModeOriginalAbout 围绕指定主题的原创故事
	StoryModeOriginalAbout StoryMode = "original_about"
	// StoryModeClassic 讲述经典童话
	StoryModeClassic StoryMode = "classic"
	// StoryModeClassicMixed 带改编要求的经典童话
	StoryModeClassicMixed StoryMode = "classic_mixed"
)

// Valid 检查模式是否合法
func (m StoryMode) Valid() bool {
	switch m {
	case StoryModeOriginal, StoryModeOriginalAbout, StoryModeClassic, StoryModeClassicMixed:
		return true
	}
	return false
}

// RequiresModification 检查模式是否要求 modification 字段
func (m StoryMode) RequiresModification() bool {
	return m == StoryModeOriginalAbout || m == StoryModeClassicMixed
}

// IsClassic 检查是否为经典童话模式
func (m StoryMode) IsClassic() bool {
	return m == StoryModeClassic || m == StoryModeClassicMixed
}

// Story 已收藏的故事实体
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	Mode      StoryMode `json:"mode"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStory 创建收藏故事
func NewStory(userID, title, body, language string, mode StoryMode, rating int) *Story {
	now := time.Now()
	return &Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Language:  language,
		Mode:      mode,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidRating 检查评分是否在 1..5 范围内
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

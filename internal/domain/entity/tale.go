// Package entity 定义领域实体
package entity

// SurpriseTaleID 目录中的占位条目，表示"随机挑一个"，不参与随机抽取
const SurpriseTaleID = "surprise"

// ClassicTale 经典童话目录条目
type ClassicTale struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IsSurprise 检查是否为占位条目
func (t *ClassicTale) IsSurprise() bool {
	return t != nil && t.ID == SurpriseTaleID
}

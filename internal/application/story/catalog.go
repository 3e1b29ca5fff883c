package story

import (
	"context"
	_ "embed"
	"encoding/json"
	"math/rand"
	"sync"

	"bedtime-story-api/internal/domain/entity"
	"bedtime-story-api/pkg/logger"
)

//go:embed tales.json
var talesJSON []byte

// Catalog 经典童话目录，只读数据，首次访问时加载
type Catalog struct {
	once  sync.Once
	tales []entity.ClassicTale
	err   error
}

// NewCatalog 创建童话目录
func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) load() {
	c.once.Do(func() {
		c.err = json.Unmarshal(talesJSON, &c.tales)
	})
}

// All 返回目录中的全部条目，含占位条目
//
// 目录数据损坏时返回 nil 并记录警告，调用方降级处理
func (c *Catalog) All(ctx context.Context) []entity.ClassicTale {
	c.load()
	if c.err != nil {
		logger.Warn(ctx, "classic tale catalog unreadable", "error", c.err.Error())
		return nil
	}
	return c.tales
}

// Get 按 ID 查找条目，未找到返回 nil
func (c *Catalog) Get(ctx context.Context, id string) *entity.ClassicTale {
	for _, tale := range c.All(ctx) {
		if tale.ID == id {
			return &tale
		}
	}
	return nil
}

// PickRandom 从目录中均匀随机挑选一个条目，排除占位条目
//
// 目录为空或损坏时返回 nil 并记录警告，
// 调用方应回退到不指定童话的生成模板
func (c *Catalog) PickRandom(ctx context.Context) *entity.ClassicTale {
	tales := c.All(ctx)
	candidates := make([]entity.ClassicTale, 0, len(tales))
	for _, tale := range tales {
		if tale.ID == entity.SurpriseTaleID {
			continue
		}
		candidates = append(candidates, tale)
	}
	if len(candidates) == 0 {
		logger.Warn(ctx, "classic tale catalog empty, falling back to unspecified tale")
		return nil
	}
	tale := candidates[rand.Intn(len(candidates))]
	return &tale
}

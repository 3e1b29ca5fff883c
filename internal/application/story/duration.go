// Package story 实现故事生成的核心流水线
package story

// WordsPerMinute 儿童故事的平均朗读速度
const WordsPerMinute = 180

// WordCount 根据朗读时长估算目标字数
func WordCount(minutes int) int {
	return minutes * WordsPerMinute
}

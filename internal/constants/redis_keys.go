package constants

import "time"

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// JobModulePrefix 岗位模块
	JobModulePrefix = "job"
	// EmbeddingModulePrefix 向量模块
	EmbeddingModulePrefix = "embedding"

	// EntityText 文本实体
	EntityText = "text"
	// EntityVector 向量实体
	EntityVector = "vector"

	// KeyJobDescriptionText 解析后的JD缓存 (STRING, JSON序列化的JobRequirement)
	// 格式: app:job:text:{jdMD5}
	KeyJobDescriptionText = AppPrefix + ":" + JobModulePrefix + ":" + EntityText + ":%s"

	// KeyEmbeddingVector 文本向量缓存 (STRING, JSON序列化的[]float64)
	// 格式: app:embedding:vector:{textMD5}
	KeyEmbeddingVector = AppPrefix + ":" + EmbeddingModulePrefix + ":" + EntityVector + ":%s"
)

const (
	// JDCacheDuration 解析后JD的缓存时长
	JDCacheDuration = 24 * time.Hour
	// EmbeddingCacheDuration 向量缓存时长，向量只依赖文本内容可以缓存较久
	EmbeddingCacheDuration = 7 * 24 * time.Hour

	// RedisDialTimeout 启动时连接探活超时
	RedisDialTimeout = 5 * time.Second
)

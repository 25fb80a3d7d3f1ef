package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigDefaultInTest 测试环境下找不到配置文件时返回默认配置
func TestLoadConfigDefaultInTest(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, 0.7, cfg.Matching.SemanticThreshold)
}

// TestLoadConfigFromFile 从YAML文件加载并填充默认值
func TestLoadConfigFromFile(t *testing.T) {
	content := `server:
  address: ":9090"
matching:
  semantic_threshold: 0.8
  skills_weight: 0.4
  experience_weight: 0.4
  education_weight: 0.1
  semantic_weight: 0.1
mysql:
  host: db.internal
  username: matcher
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 0.8, cfg.Matching.SemanticThreshold)
	assert.Equal(t, 0.4, cfg.Matching.SkillsWeight)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	// 未配置项由默认值填充
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 384, cfg.Embedding.Dimensions)
	assert.Equal(t, 60, cfg.Matching.MatchTimeoutSeconds)
	assert.Equal(t, "match-results", cfg.MinIO.ResultsBucket)
}

// TestLoadConfigEnvOverride 环境变量覆盖文件配置
func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mysql:\n  host: from-file\n"), 0o644))

	t.Setenv("MYSQL_HOST", "from-env")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.MySQL.Host)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
}

// TestLoadConfigInvalidYAML 非法YAML返回解析错误
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

// TestApplyDefaultsWeights 权重仅在全部未配置时整组填默认
func TestApplyDefaultsWeights(t *testing.T) {
	cfg := &Config{}
	cfg.Matching.SkillsWeight = 0.9

	applyDefaults(cfg)

	assert.Equal(t, 0.9, cfg.Matching.SkillsWeight)
	assert.Equal(t, 0.0, cfg.Matching.ExperienceWeight)

	cfg = &Config{}
	applyDefaults(cfg)
	assert.Equal(t, 0.5, cfg.Matching.SkillsWeight)
	assert.Equal(t, 0.3, cfg.Matching.ExperienceWeight)
	assert.Equal(t, 0.1, cfg.Matching.EducationWeight)
	assert.Equal(t, 0.1, cfg.Matching.SemanticWeight)
}

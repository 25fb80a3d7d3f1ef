package normalizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// TestNormalizeSkillPassThrough 未命中映射的值原样保留
func TestNormalizeSkillPassThrough(t *testing.T) {
	n := NewNormalizerFromMaps(map[string]string{"JS": "JavaScript"}, nil)

	assert.Equal(t, "JavaScript", n.NormalizeSkill("JS"))
	assert.Equal(t, "Haskell", n.NormalizeSkill("Haskell"))
	// 键匹配是大小写敏感的精确匹配
	assert.Equal(t, "js", n.NormalizeSkill("js"))
}

// TestApplyNormalizesInPlace 就地替换技能名与职位名
func TestApplyNormalizesInPlace(t *testing.T) {
	n := NewNormalizerFromMaps(
		map[string]string{"golang": "Go", "k8s": "Kubernetes"},
		map[string]string{"SWE": "Software Engineer"},
	)
	resume := types.NewResume()
	resume.Skills = []types.SkillItem{{Name: "golang"}, {Name: "Python"}, {Name: "k8s"}}
	resume.Work = []types.WorkEntry{{Position: "SWE", Company: "Acme"}}

	n.Apply(resume)

	assert.Equal(t, "Go", resume.Skills[0].Name)
	assert.Equal(t, "Python", resume.Skills[1].Name)
	assert.Equal(t, "Kubernetes", resume.Skills[2].Name)
	assert.Equal(t, "Software Engineer", resume.Work[0].Position)
}

// TestApplyIdempotent 重复应用结果不变
func TestApplyIdempotent(t *testing.T) {
	n := NewNormalizerFromMaps(map[string]string{"golang": "Go"}, nil)
	resume := types.NewResume()
	resume.Skills = []types.SkillItem{{Name: "golang"}}

	n.Apply(resume)
	n.Apply(resume)

	assert.Equal(t, "Go", resume.Skills[0].Name)
}

// TestApplyNilResume nil简历不崩溃
func TestApplyNilResume(t *testing.T) {
	n := NewNormalizerFromMaps(nil, nil)

	assert.NotPanics(t, func() { n.Apply(nil) })
}

// TestNewNormalizerFromFiles 从JSON文件加载映射
func TestNewNormalizerFromFiles(t *testing.T) {
	dir := t.TempDir()
	skillsPath := filepath.Join(dir, "skills.json")
	titlesPath := filepath.Join(dir, "titles.json")
	require.NoError(t, os.WriteFile(skillsPath, []byte(`{"Sql":"SQL"}`), 0o644))
	require.NoError(t, os.WriteFile(titlesPath, []byte(`{}`), 0o644))

	n, err := NewNormalizer(skillsPath, titlesPath)

	require.NoError(t, err)
	assert.Equal(t, "SQL", n.NormalizeSkill("Sql"))
}

// TestNewNormalizerMissingFile 映射文件缺失是硬错误
func TestNewNormalizerMissingFile(t *testing.T) {
	_, err := NewNormalizer("/nonexistent/skills.json", "/nonexistent/titles.json")

	assert.Error(t, err)
}

// TestNewNormalizerInvalidJSON 非法JSON是硬错误
func TestNewNormalizerInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewNormalizer(path, path)

	assert.Error(t, err)
}

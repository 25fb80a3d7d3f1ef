package normalizer

import (
	"encoding/json"
	"fmt"
	"os"

	"resume-match-go/internal/types"
)

// Normalizer 基于本体映射表的规范化器
// 技能名与职位名做精确键匹配替换，未命中的值原样保留
type Normalizer struct {
	skills    map[string]string
	jobTitles map[string]string
}

// NewNormalizer 从JSON映射文件加载规范化器
// 文件缺失或格式非法视为启动硬错误
func NewNormalizer(skillsPath, jobTitlesPath string) (*Normalizer, error) {
	skills, err := loadMapping(skillsPath)
	if err != nil {
		return nil, fmt.Errorf("加载技能本体失败: %w", err)
	}
	jobTitles, err := loadMapping(jobTitlesPath)
	if err != nil {
		return nil, fmt.Errorf("加载职位映射失败: %w", err)
	}
	return NewNormalizerFromMaps(skills, jobTitles), nil
}

// NewNormalizerFromMaps 直接由映射表构造，测试用
func NewNormalizerFromMaps(skills, jobTitles map[string]string) *Normalizer {
	if skills == nil {
		skills = map[string]string{}
	}
	if jobTitles == nil {
		jobTitles = map[string]string{}
	}
	return &Normalizer{skills: skills, jobTitles: jobTitles}
}

func loadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取映射文件 %s: %w", path, err)
	}
	mapping := map[string]string{}
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("解析映射文件 %s: %w", path, err)
	}
	return mapping, nil
}

// NormalizeSkill 规范化单个技能名，未命中返回原值
func (n *Normalizer) NormalizeSkill(name string) string {
	if canonical, ok := n.skills[name]; ok {
		return canonical
	}
	return name
}

// NormalizeJobTitle 规范化单个职位名，未命中返回原值
func (n *Normalizer) NormalizeJobTitle(title string) string {
	if canonical, ok := n.jobTitles[title]; ok {
		return canonical
	}
	return title
}

// Apply 就地规范化简历的技能名与工作经历职位名
// 映射表的值域本身是规范形，因此重复调用结果不变
func (n *Normalizer) Apply(resume *types.Resume) {
	if resume == nil {
		return
	}
	for i := range resume.Skills {
		resume.Skills[i].Name = n.NormalizeSkill(resume.Skills[i].Name)
	}
	for i := range resume.Work {
		resume.Work[i].Position = n.NormalizeJobTitle(resume.Work[i].Position)
	}
}

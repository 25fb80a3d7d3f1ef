package types

// SectionName 规范化的简历章节名称
type SectionName string

const (
	// SectionSummary 个人简介章节
	SectionSummary SectionName = "summary"
	// SectionSkills 技能章节
	SectionSkills SectionName = "skills"
	// SectionWork 工作经历章节
	SectionWork SectionName = "work"
	// SectionEducation 教育经历章节
	SectionEducation SectionName = "education"
	// SectionCertifications 证书章节
	SectionCertifications SectionName = "certifications"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionName = "languages"
	// SectionProjects 项目经历章节
	SectionProjects SectionName = "projects"
)

// SectionMap 规范章节名到章节正文的映射
// 仅包含实际识别出的章节；首个章节标题之前的文本不在其中，
// 由调用方单独用于联系方式提取
type SectionMap map[SectionName]string

// SkillItem 单条技能，Level 固定默认为 "Intermediate"（不解析熟练度）
type SkillItem struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// WorkEntry 单段工作经历
// 日期字段保留原始字符串形态：纯4位年份、"Month Year" 或字面量 "Present"
type WorkEntry struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Summary   string `json:"summary"`
}

// EducationEntry 单段教育经历，无法提取的字段保持空字符串
type EducationEntry struct {
	Institution string `json:"institution"`
	Area        string `json:"area"`
	StudyType   string `json:"studyType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ProjectEntry 单个项目条目
type ProjectEntry struct {
	Name        string `json:"name"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// Resume 结构化简历记录
// 不变式：所有列表字段永远非 nil（可为空切片），下游无需判空
type Resume struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Location       string           `json:"location"`
	Summary        string           `json:"summary"`
	Skills         []SkillItem      `json:"skills"`
	Work           []WorkEntry      `json:"work"`
	Education      []EducationEntry `json:"education"`
	Certifications []string         `json:"certifications"`
	Languages      []string         `json:"languages"`
	Projects       []ProjectEntry   `json:"projects"`
}

// NewResume 创建一个所有列表字段均已初始化的空简历
func NewResume() *Resume {
	return &Resume{
		Skills:         []SkillItem{},
		Work:           []WorkEntry{},
		Education:      []EducationEntry{},
		Certifications: []string{},
		Languages:      []string{},
		Projects:       []ProjectEntry{},
	}
}

// JobRequirement 从JD文本解析出的岗位要求
type JobRequirement struct {
	Title string `json:"title"`
	// RequiredSkills 提取出的技能要求列表（大小写不敏感去重）
	RequiredSkills []string `json:"required_skills"`
	// RequiredExperienceYears 要求的工作年限，0 表示未指定
	RequiredExperienceYears int `json:"required_experience_years"`
	// RequiredEducation 学历要求的完整名称，如 "Bachelor's Degree"，空表示未指定
	RequiredEducation string `json:"required_education"`
	// MatchText 保留的JD原文，用于整文档级语义比较
	MatchText string `json:"match_text"`
}

// SkillMatchDetail 技能匹配明细
// SemanticallyMatched 中的元素为可读说明，形如
// "Kubernetes (similar to container orchestration, score: 0.82)"
type SkillMatchDetail struct {
	Matched             []string `json:"matched"`
	Missing             []string `json:"missing"`
	SemanticallyMatched []string `json:"semantically_matched"`
}

// CategoryMatchDetail education/experience 两类的匹配明细
type CategoryMatchDetail struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// MatchDetails 按类别组织的匹配明细，字段名是对外序列化契约的一部分
type MatchDetails struct {
	SkillMatches      SkillMatchDetail    `json:"skill_matches"`
	EducationMatches  CategoryMatchDetail `json:"education_matches"`
	ExperienceMatches CategoryMatchDetail `json:"experience_matches"`
}

// RankedMatch 重排序后的单条匹配项（可选的 rerank 能力输出）
type RankedMatch struct {
	Type  string  `json:"type"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// MatchResult 简历与岗位的匹配评分结果
// 各分项分数均在 [0,1]，overall_score 为固定权重加权和
type MatchResult struct {
	OverallScore              float64       `json:"overall_score"`
	SkillScore                float64       `json:"skill_score"`
	ExperienceScore           float64       `json:"experience_score"`
	EducationScore            float64       `json:"education_score"`
	SemanticScore             float64       `json:"semantic_score"`
	CalculatedExperienceYears float64       `json:"calculated_experience_years"`
	Details                   MatchDetails  `json:"details"`
	RankedMatches             []RankedMatch `json:"ranked_matches,omitempty"`
}

// EntityKind NER能力返回的实体类别
type EntityKind string

const (
	EntityPerson       EntityKind = "PERSON"
	EntityOrganization EntityKind = "ORG"
	EntityLocation     EntityKind = "LOCATION"
	EntityMisc         EntityKind = "MISC"
)

// EntitySpan NER能力标注出的一个片段
type EntitySpan struct {
	Text       string     `json:"text"`
	Kind       EntityKind `json:"kind"`
	Confidence float64    `json:"confidence"`
}

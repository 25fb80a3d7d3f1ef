package parser

import (
	"context"
	"errors"
	"testing"

	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
)

// MockEntityTagger 模拟NER标注器
type MockEntityTagger struct {
	spans []types.EntitySpan
	err   error
}

func (m *MockEntityTagger) TagEntities(ctx context.Context, text string) ([]types.EntitySpan, error) {
	return m.spans, m.err
}

// TestContactExtractEmailAndPhone 邮箱与电话的正则提取
func TestContactExtractEmailAndPhone(t *testing.T) {
	extractor := NewContactExtractor(nil)

	info := extractor.Extract(context.Background(), "John Smith\njohn.smith+cv@example.co.uk\n+1 (415) 555-1234")

	assert.Equal(t, "john.smith+cv@example.co.uk", info.Email)
	assert.Equal(t, "+1 (415) 555-1234", info.Phone)
}

// TestContactNameLabelTakesPrecedence 显式标签优先于NER
func TestContactNameLabelTakesPrecedence(t *testing.T) {
	tagger := &MockEntityTagger{spans: []types.EntitySpan{
		{Text: "Alice Wonder", Kind: types.EntityPerson, Confidence: 0.99},
	}}
	extractor := NewContactExtractor(tagger)

	info := extractor.Extract(context.Background(), "Name: Bob Builder\nbob@example.com")

	assert.Equal(t, "Bob Builder", info.Name)
}

// TestContactNameLabelTooLong 标签值超过3个词时不接受
func TestContactNameLabelTooLong(t *testing.T) {
	extractor := NewContactExtractor(nil)

	info := extractor.Extract(context.Background(), "Name: John Jacob Jingleheimer Schmidt Esq\nsome text")

	assert.Empty(t, info.Name)
}

// TestContactNERFallback 无标签时取首个PERSON和全部LOCATION
func TestContactNERFallback(t *testing.T) {
	tagger := &MockEntityTagger{spans: []types.EntitySpan{
		{Text: "Carol Danvers", Kind: types.EntityPerson, Confidence: 0.95},
		{Text: "Dan Smith", Kind: types.EntityPerson, Confidence: 0.90},
		{Text: "Seattle", Kind: types.EntityLocation, Confidence: 0.92},
		{Text: "WA", Kind: types.EntityLocation, Confidence: 0.88},
	}}
	extractor := NewContactExtractor(tagger)

	info := extractor.Extract(context.Background(), "carol resume text")

	assert.Equal(t, "Carol Danvers", info.Name)
	assert.Equal(t, "Seattle, WA", info.Location)
}

// TestContactNERSkipsNA 值为N/A的span被跳过
func TestContactNERSkipsNA(t *testing.T) {
	tagger := &MockEntityTagger{spans: []types.EntitySpan{
		{Text: "n/a", Kind: types.EntityPerson, Confidence: 0.9},
		{Text: "Eve Online", Kind: types.EntityPerson, Confidence: 0.8},
	}}
	extractor := NewContactExtractor(tagger)

	info := extractor.Extract(context.Background(), "some text")

	assert.Equal(t, "Eve Online", info.Name)
}

// TestContactNERFailureDegrades NER报错时降级到大写启发式而非失败
func TestContactNERFailureDegrades(t *testing.T) {
	tagger := &MockEntityTagger{err: errors.New("ner service unavailable")}
	extractor := NewContactExtractor(tagger)

	info := extractor.Extract(context.Background(), "Frank Castle\nfrank@example.com")

	assert.Equal(t, "Frank Castle", info.Name)
	assert.Equal(t, "frank@example.com", info.Email)
}

// TestContactCapitalizationHeuristic 2-3个首字母大写词的行视为姓名
func TestContactCapitalizationHeuristic(t *testing.T) {
	extractor := NewContactExtractor(nil)

	info := extractor.Extract(context.Background(), "the quick brown fox\nGrace Hopper Jones\nmore text")
	assert.Equal(t, "Grace Hopper Jones", info.Name)

	// 含@的行不可能是姓名
	info = extractor.Extract(context.Background(), "Grace@example.com Hopper")
	assert.Empty(t, info.Name)
}

// TestContactLocationLabelNA Location标签值为N/A视为未填写
func TestContactLocationLabelNA(t *testing.T) {
	extractor := NewContactExtractor(nil)

	info := extractor.Extract(context.Background(), "Location: N/A")
	assert.Empty(t, info.Location)

	info = extractor.Extract(context.Background(), "Location: Berlin, Germany")
	assert.Equal(t, "Berlin, Germany", info.Location)
}

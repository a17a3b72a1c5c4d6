package search

import (
	"testing"
	"time"

	"github.com/imgajeed76/dataview/internal/record"
	"github.com/stretchr/testify/assert"
)

func knowledge() []record.Record {
	return []record.Record{
		{"id": 1, "question": "¿Dónde está mi área?", "category": map[string]any{"id": 3}, "question_embedding": []any{0.1}, "is_active": true, "created_at": "2024-01-10"},
		{"id": 2, "question": "Horario de atención", "category": 3, "question_embedding": []any{}, "is_active": false, "created_at": "2024-02-10"},
		{"id": 3, "question": "Cambio de área", "category": map[string]any{"id": "5"}, "is_active": 1, "created_at": "2024-03-10"},
		{"id": 4, "question": "Vacaciones", "is_active": 0, "created_at": "not a date"},
	}
}

func idsOf(records []record.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r["id"].(int)
	}
	return out
}

func TestApply_ZeroValueKeepsEverything(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, idsOf(Apply(knowledge(), Filters{})))
}

func TestApply_Query(t *testing.T) {
	f := Filters{Query: "AREA", Fields: []string{"question"}}
	assert.Equal(t, []int{1, 3}, idsOf(Apply(knowledge(), f)))

	f.MinQueryLength = 5
	assert.Equal(t, []int{1, 2, 3, 4}, idsOf(Apply(knowledge(), f)), "short queries are ignored")
	assert.False(t, f.HasQuery())
}

func TestApply_Category(t *testing.T) {
	assert.Equal(t, []int{1, 2}, idsOf(Apply(knowledge(), Filters{CategoryID: "3"})))
	assert.Equal(t, []int{3}, idsOf(Apply(knowledge(), Filters{CategoryID: "5"})))
}

func TestApply_Embedding(t *testing.T) {
	assert.Equal(t, []int{1}, idsOf(Apply(knowledge(), Filters{Embedding: EmbeddingWith})))
	assert.Equal(t, []int{2, 3, 4}, idsOf(Apply(knowledge(), Filters{Embedding: EmbeddingWithout})))
}

func TestApply_EmbeddingFalsyValuesCountAsWithout(t *testing.T) {
	records := []record.Record{
		{"id": 1, "question_embedding": false},
		{"id": 2, "question_embedding": 0.0},
		{"id": 3, "question_embedding": []float64{}},
		{"id": 4, "question_embedding": map[string]string{}},
		{"id": 5, "question_embedding": []float64{0.3}},
	}
	assert.Equal(t, []int{1, 2, 3, 4}, idsOf(Apply(records, Filters{Embedding: EmbeddingWithout})))
	assert.Equal(t, []int{5}, idsOf(Apply(records, Filters{Embedding: EmbeddingWith})))
}

func TestApply_Active(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, []int{1, 3}, idsOf(Apply(knowledge(), Filters{Active: &yes})))
	assert.Equal(t, []int{2, 4}, idsOf(Apply(knowledge(), Filters{Active: &no})))
}

func TestApply_DateRange(t *testing.T) {
	f := Filters{
		From: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []int{2, 3}, idsOf(Apply(knowledge(), f)))

	f.To = time.Time{}
	assert.Equal(t, []int{2, 3}, idsOf(Apply(knowledge(), f)))
	assert.True(t, f.HasFilters())
}

func TestApply_Combined(t *testing.T) {
	yes := true
	f := Filters{Query: "area", Fields: []string{"question"}, Active: &yes, CategoryID: "3"}
	assert.Equal(t, []int{1}, idsOf(Apply(knowledge(), f)))
}

func TestStatsOf(t *testing.T) {
	assert.Equal(t, Stats{Total: 4, Filtered: 1, Hidden: 3, MatchPercentage: 25}, StatsOf(4, 1))
	assert.Equal(t, Stats{Total: 3, Filtered: 2, Hidden: 1, MatchPercentage: 67}, StatsOf(3, 2))
	assert.Equal(t, Stats{}, StatsOf(0, 0))
}

// Package metrics counts view pipeline stage evaluations in a Prometheus
// registry.
package metrics

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/imgajeed76/dataview/internal/view"
)

const (
	resultHit  = "hit"
	resultMiss = "miss"
)

// Recorder is a view.Observer backed by a counter vector.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
}

// New registers the stage counter on reg, or on a fresh registry when reg
// is nil.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Recorder{
		registry: reg,
		evaluations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "dataview",
			Name:      "stage_evaluations_total",
			Help:      "Total number of view pipeline stage reads, by memo result.",
		}, []string{"stage", "result"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) StageEvaluated(stage view.Stage, cached bool) {
	result := resultMiss
	if cached {
		result = resultHit
	}
	r.evaluations.WithLabelValues(string(stage), result).Inc()
}

// StageCount is the hit/miss tally of one stage.
type StageCount struct {
	Stage  string `json:"stage"`
	Hits   int    `json:"hits"`
	Misses int    `json:"misses"`
}

// HitRate is the fraction of reads served from the memo.
func (s StageCount) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Summary gathers the registry and returns one count per stage seen,
// sorted by stage name.
func (r *Recorder) Summary() ([]StageCount, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gather metrics")
	}
	byStage := map[string]*StageCount{}
	for _, family := range families {
		if family.GetName() != "dataview_stage_evaluations_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			stage, result := labels(m)
			sc, ok := byStage[stage]
			if !ok {
				sc = &StageCount{Stage: stage}
				byStage[stage] = sc
			}
			n := int(m.GetCounter().GetValue())
			if result == resultHit {
				sc.Hits += n
			} else {
				sc.Misses += n
			}
		}
	}

	out := make([]StageCount, 0, len(byStage))
	for _, sc := range byStage {
		out = append(out, *sc)
	}
	slices.SortFunc(out, func(a, b StageCount) int {
		switch {
		case a.Stage < b.Stage:
			return -1
		case a.Stage > b.Stage:
			return 1
		}
		return 0
	})
	return out, nil
}

func labels(m *dto.Metric) (stage, result string) {
	for _, lp := range m.GetLabel() {
		switch lp.GetName() {
		case "stage":
			stage = lp.GetValue()
		case "result":
			result = lp.GetValue()
		}
	}
	return stage, result
}

var _ view.Observer = (*Recorder)(nil)

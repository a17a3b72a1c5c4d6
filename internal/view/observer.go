package view

// Stage names one memoized step of the derivation pipeline.
type Stage string

const (
	StageSorted      Stage = "sorted"
	StagePagination  Stage = "pagination"
	StagePaginated   Stage = "paginated"
	StagePageNumbers Stage = "page_numbers"
)

// Stages lists every pipeline stage in evaluation order.
var Stages = []Stage{StageSorted, StagePagination, StagePaginated, StagePageNumbers}

// Observer is told about every stage read. cached is true when the stage
// was served from its memo.
type Observer interface {
	StageEvaluated(stage Stage, cached bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(stage Stage, cached bool)

func (f ObserverFunc) StageEvaluated(stage Stage, cached bool) { f(stage, cached) }

type multiObserver []Observer

func (m multiObserver) StageEvaluated(stage Stage, cached bool) {
	for _, o := range m {
		o.StageEvaluated(stage, cached)
	}
}

// Observers fans events out to every non-nil observer.
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

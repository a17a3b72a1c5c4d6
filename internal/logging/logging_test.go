package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/imgajeed76/dataview/internal/view"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, logrus.DebugLevel, New(&buf, true).GetLevel())
}

func TestContextRoundTrip(t *testing.T) {
	log := New(&bytes.Buffer{}, false)
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
}

func TestStageLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	obs := NewStageLogger(log)

	obs.StageEvaluated(view.StageSorted, false)
	obs.StageEvaluated(view.StagePaginated, true)

	out := buf.String()
	assert.Contains(t, out, "stage recomputed")
	assert.Contains(t, out, "stage=sorted")
	assert.NotContains(t, out, "stage cached")
}

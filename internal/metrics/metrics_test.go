package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGenerationCountsByStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(GenerationsTotal.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(GenerationsTotal.WithLabelValues("error"))

	ObserveGeneration(time.Second, nil)
	ObserveGeneration(time.Second, errors.New("refused"))
	ObserveGeneration(time.Second, errors.New("refused"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("success")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(GenerationsTotal.WithLabelValues("error")))
}

func TestObserveTurn(t *testing.T) {
	before := testutil.ToFloat64(ChatTurnsTotal.WithLabelValues("shipping"))
	ObserveTurn("shipping")
	assert.Equal(t, before+1, testutil.ToFloat64(ChatTurnsTotal.WithLabelValues("shipping")))
}

package timeseries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/timeseries"
)

// muestras {cantidad, hora, día de semana}: un grupo compacto más un atípico.
func samplesWithOutlier() [][]float64 {
	samples := [][]float64{
		{-10, 14, 1}, {-11, 14, 2}, {-12, 15, 3}, {-10, 14, 4}, {-11, 15, 5},
		{-12, 14, 1}, {-10, 15, 2}, {-11, 14, 3}, {-12, 15, 4}, {-10, 14, 5},
		{-11, 15, 1}, {-12, 14, 2}, {-10, 15, 3}, {-11, 14, 4}, {-12, 15, 5},
		{-500, 3, 0}, // atípico: magnitud extrema en horario inusual
	}
	return samples
}

func TestIsolationForest_DetectaAtipico(t *testing.T) {
	detector := timeseries.NewIsolationForest()
	samples := samplesWithOutlier()

	flagged := detector.Detect(samples)

	require.NotEmpty(t, flagged)
	assert.Contains(t, flagged, len(samples)-1, "el atípico debe quedar marcado")
	assert.Less(t, len(flagged), len(samples)/2, "no debe marcar a la mayoría")
}

// Semilla fija: corridas repetidas sobre la misma entrada devuelven lo mismo.
func TestIsolationForest_Determinista(t *testing.T) {
	detector := timeseries.NewIsolationForest()
	samples := samplesWithOutlier()

	first := detector.Detect(samples)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, detector.Detect(samples))
	}
}

// Los índices marcados conservan el orden de entrada.
func TestIsolationForest_ConservaOrden(t *testing.T) {
	detector := timeseries.NewIsolationForest()
	flagged := detector.Detect(samplesWithOutlier())

	for i := 1; i < len(flagged); i++ {
		assert.Greater(t, flagged[i], flagged[i-1])
	}
}

func TestIsolationForest_EntradaVacia(t *testing.T) {
	detector := timeseries.NewIsolationForest()
	assert.Empty(t, detector.Detect(nil))
}

// Muestras idénticas: nada es aislable, nada debe marcarse.
func TestIsolationForest_MuestrasIdenticas(t *testing.T) {
	detector := timeseries.NewIsolationForest()
	samples := make([][]float64, 20)
	for i := range samples {
		samples[i] = []float64{-5, 12, 3}
	}
	assert.Empty(t, detector.Detect(samples))
}

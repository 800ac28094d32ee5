package timeseries

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Período de la estacionalidad semanal, en días.
const weeklyPeriod = 7.0

var _ Forecaster = AdditiveModel{}

// AdditiveModel modelo aditivo de tendencia lineal más estacionalidad semanal
// (pares seno/coseno). Se ajusta por mínimos cuadrados sobre la serie
// observada y extrapola el horizonte pedido en pasos diarios.
type AdditiveModel struct {
	// Harmonics número máximo de armónicos semanales. Se reduce
	// automáticamente si la serie es demasiado corta para estimarlos.
	Harmonics int
}

// NewAdditiveModel construye el modelo con dos armónicos semanales.
func NewAdditiveModel() AdditiveModel {
	return AdditiveModel{Harmonics: 2}
}

// Forecast ajusta el modelo y devuelve los valores ajustados en los
// timestamps observados seguidos de `horizon` proyecciones diarias después
// de la última observación. Devuelve error si la serie tiene menos de dos
// puntos o si el sistema de mínimos cuadrados no tiene solución (por ejemplo,
// timestamps duplicados que degeneran la matriz de diseño).
func (m AdditiveModel) Forecast(points []Point, horizon int) ([]Point, error) {
	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("forecast: se requieren al menos 2 observaciones, hay %d", n)
	}

	// Armónicos estimables: cada uno agrega dos columnas (sin, cos) a las dos
	// de la tendencia. Con pocas observaciones solo se ajusta la tendencia.
	harmonics := m.Harmonics
	if max := (n - 2) / 2; harmonics > max {
		harmonics = max
	}
	cols := 2 + 2*harmonics

	t0 := points[0].Time
	design := mat.NewDense(n, cols, nil)
	y := mat.NewVecDense(n, nil)
	for i, p := range points {
		fillRow(design, i, elapsedDays(t0, p.Time), harmonics)
		y.SetVec(i, p.Value)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, y); err != nil {
		return nil, fmt.Errorf("forecast: ajuste por mínimos cuadrados: %w", err)
	}

	out := make([]Point, 0, n+horizon)
	for _, p := range points {
		out = append(out, Point{Time: p.Time, Value: m.predict(&beta, elapsedDays(t0, p.Time), harmonics)})
	}
	last := points[n-1].Time
	for k := 1; k <= horizon; k++ {
		ts := last.Add(time.Duration(k) * 24 * time.Hour)
		out = append(out, Point{Time: ts, Value: m.predict(&beta, elapsedDays(t0, ts), harmonics)})
	}
	return out, nil
}

// fillRow escribe la fila i de la matriz de diseño: [1, t, sin/cos semanales].
func fillRow(design *mat.Dense, i int, t float64, harmonics int) {
	design.Set(i, 0, 1)
	design.Set(i, 1, t)
	for h := 1; h <= harmonics; h++ {
		freq := 2 * math.Pi * float64(h) * t / weeklyPeriod
		design.Set(i, 2*h, math.Sin(freq))
		design.Set(i, 2*h+1, math.Cos(freq))
	}
}

func (m AdditiveModel) predict(beta *mat.VecDense, t float64, harmonics int) float64 {
	v := beta.AtVec(0) + beta.AtVec(1)*t
	for h := 1; h <= harmonics; h++ {
		freq := 2 * math.Pi * float64(h) * t / weeklyPeriod
		v += beta.AtVec(2*h)*math.Sin(freq) + beta.AtVec(2*h+1)*math.Cos(freq)
	}
	return v
}

// elapsedDays días transcurridos (fraccionarios) desde t0.
func elapsedDays(t0, t time.Time) float64 {
	return t.Sub(t0).Hours() / 24
}

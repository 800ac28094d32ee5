package timeseries

import "time"

// Point una observación (timestamp, valor) de una serie temporal.
type Point struct {
	Time  time.Time
	Value float64
}

// Forecaster ajusta un modelo a una serie y devuelve los valores ajustados
// sobre los timestamps observados más un horizonte de períodos futuros.
// Los valores devueltos son crudos (sin redondear ni recortar); el caller
// decide el formato de salida.
type Forecaster interface {
	Forecast(points []Point, horizon int) ([]Point, error)
}

// OutlierDetector señala observaciones atípicas dentro de un conjunto de
// muestras. Devuelve los índices marcados en el orden de entrada.
type OutlierDetector interface {
	Detect(samples [][]float64) []int
}

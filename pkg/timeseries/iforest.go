package timeseries

import (
	"math"
	"math/rand"
)

// Parámetros por defecto del bosque de aislamiento.
const (
	defaultTrees      = 100
	defaultSampleSize = 256
	defaultSeed       = 42
)

var _ OutlierDetector = IsolationForest{}

// IsolationForest detector de atípicos no supervisado basado en árboles de
// partición aleatoria. Cada árbol divide el espacio de características con
// pares (feature, umbral) al azar; el score de una muestra es inversamente
// proporcional a la profundidad media necesaria para aislarla (camino más
// corto = más anómala). La semilla es fija para que el resultado sea
// reproducible entre ejecuciones.
type IsolationForest struct {
	Trees      int
	SampleSize int
	Seed       int64
}

// NewIsolationForest construye el detector con los parámetros por defecto.
func NewIsolationForest() IsolationForest {
	return IsolationForest{Trees: defaultTrees, SampleSize: defaultSampleSize, Seed: defaultSeed}
}

// Detect entrena el bosque sobre las muestras y devuelve los índices cuyo
// score de anomalía cruza la frontera de decisión (contaminación automática:
// score > 0.5, es decir, camino medio más corto que el de una muestra
// promedio). El orden relativo de la entrada se conserva en la salida.
func (f IsolationForest) Detect(samples [][]float64) []int {
	n := len(samples)
	if n == 0 {
		return nil
	}
	trees := f.Trees
	if trees <= 0 {
		trees = defaultTrees
	}
	sampleSize := f.SampleSize
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	if sampleSize > n {
		sampleSize = n
	}

	rng := rand.New(rand.NewSource(f.Seed))
	heightLimit := int(math.Ceil(math.Log2(float64(sampleSize))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	forest := make([]*isoNode, trees)
	for t := 0; t < trees; t++ {
		idx := rng.Perm(n)[:sampleSize]
		forest[t] = buildIsoTree(samples, idx, 0, heightLimit, rng)
	}

	norm := avgPathLength(sampleSize)
	var flagged []int
	for i, s := range samples {
		var sum float64
		for _, tree := range forest {
			sum += pathLength(tree, s, 0)
		}
		score := math.Pow(2, -(sum/float64(trees))/norm)
		if score > 0.5 {
			flagged = append(flagged, i)
		}
	}
	return flagged
}

// isoNode nodo de un árbol de aislamiento. Hoja cuando left/right son nil.
type isoNode struct {
	feature     int
	threshold   float64
	left, right *isoNode
	size        int // muestras en la hoja
}

// buildIsoTree particiona recursivamente idx con pares (feature, umbral)
// aleatorios hasta aislar cada muestra o alcanzar el límite de altura.
func buildIsoTree(samples [][]float64, idx []int, depth, heightLimit int, rng *rand.Rand) *isoNode {
	if len(idx) <= 1 || depth >= heightLimit {
		return &isoNode{size: len(idx)}
	}

	// Elegir una característica con rango no degenerado; si todas las
	// muestras del nodo son idénticas no hay nada que dividir.
	dims := len(samples[idx[0]])
	splittable := make([]int, 0, dims)
	for q := 0; q < dims; q++ {
		lo, hi := featureRange(samples, idx, q)
		if hi > lo {
			splittable = append(splittable, q)
		}
	}
	if len(splittable) == 0 {
		return &isoNode{size: len(idx)}
	}

	q := splittable[rng.Intn(len(splittable))]
	lo, hi := featureRange(samples, idx, q)
	threshold := lo + rng.Float64()*(hi-lo)

	var left, right []int
	for _, i := range idx {
		if samples[i][q] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(idx)}
	}
	return &isoNode{
		feature:   q,
		threshold: threshold,
		left:      buildIsoTree(samples, left, depth+1, heightLimit, rng),
		right:     buildIsoTree(samples, right, depth+1, heightLimit, rng),
	}
}

func featureRange(samples [][]float64, idx []int, q int) (lo, hi float64) {
	lo, hi = samples[idx[0]][q], samples[idx[0]][q]
	for _, i := range idx[1:] {
		v := samples[i][q]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// pathLength profundidad del recorrido de la muestra más el ajuste c(size)
// cuando la hoja todavía contiene varias muestras.
func pathLength(node *isoNode, sample []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if sample[node.feature] < node.threshold {
		return pathLength(node.left, sample, depth+1)
	}
	return pathLength(node.right, sample, depth+1)
}

// avgPathLength c(m): profundidad media de búsqueda fallida en un BST de m
// nodos, usada para normalizar los caminos.
func avgPathLength(m int) float64 {
	if m <= 1 {
		return 0
	}
	fm := float64(m)
	harmonic := math.Log(fm-1) + 0.5772156649015329 // número armónico aproximado
	return 2*harmonic - 2*(fm-1)/fm
}

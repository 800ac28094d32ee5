package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/timeseries"
)

// fakeAnalyticsRepo repositorio en memoria: devuelve lo que se le precarga.
type fakeAnalyticsRepo struct {
	historical []repository.SeriesPoint
	scheduled  []repository.SeriesPoint
	outgoing   []*entity.Movement
	global     []repository.MovementWithProduct
	byProduct  map[string][]repository.MovementWithProduct
	kpis       repository.DashboardKPIs
	err        error
}

func (f *fakeAnalyticsRepo) GetHistoricalSeries(_ context.Context, _ string) ([]repository.SeriesPoint, error) {
	return f.historical, f.err
}

func (f *fakeAnalyticsRepo) GetScheduledSeries(_ context.Context, _ string) ([]repository.SeriesPoint, error) {
	return f.scheduled, f.err
}

func (f *fakeAnalyticsRepo) GetOutgoingMovements(_ context.Context, _ string) ([]*entity.Movement, error) {
	return f.outgoing, f.err
}

func (f *fakeAnalyticsRepo) ListMovementsWithProduct(_ context.Context) ([]repository.MovementWithProduct, error) {
	return f.global, f.err
}

func (f *fakeAnalyticsRepo) ListProductMovementsWithName(_ context.Context, productID string) ([]repository.MovementWithProduct, error) {
	return f.byProduct[productID], f.err
}

func (f *fakeAnalyticsRepo) GetDashboardKPIs(_ context.Context) (repository.DashboardKPIs, error) {
	return f.kpis, f.err
}

// failingForecaster modelo que siempre falla el ajuste.
type failingForecaster struct{}

func (failingForecaster) Forecast([]timeseries.Point, int) ([]timeseries.Point, error) {
	return nil, errors.New("matriz singular")
}

func newUseCase(repo repository.AnalyticsRepository) *analytics.AnalyticsUseCase {
	return analytics.NewAnalyticsUseCase(repo, timeseries.NewAdditiveModel(), timeseries.NewIsolationForest())
}

func outgoing(t0 time.Time, qty ...int) []*entity.Movement {
	movs := make([]*entity.Movement, 0, len(qty))
	for i, q := range qty {
		movs = append(movs, &entity.Movement{
			ID:             "m" + string(rune('a'+i)),
			ProductID:      "p1",
			ChangeQuantity: -q,
			Status:         entity.MovementStatusCompleted,
			CreatedAt:      t0.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	return movs
}

// ──────────────────────────────────────────────────────────────────────────────
// Pronóstico
// ──────────────────────────────────────────────────────────────────────────────

func TestGetForecast_ProyectaDemanda(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{outgoing: outgoing(t0, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14)}
	uc := newUseCase(repo)

	series, err := uc.GetForecast(context.Background(), "p1")
	require.NoError(t, err)

	// Historial ajustado (10) + horizonte de 30 días.
	assert.Len(t, series, 40)

	// Demanda lineal creciente: los últimos valores proyectados superan a los
	// históricos y todos son enteros no negativos.
	last := series[len(series)-1]
	assert.Greater(t, last.Quantity, 14)
	assert.Equal(t, t0.Add(39*24*time.Hour), last.Timestamp)
	for _, p := range series {
		assert.GreaterOrEqual(t, p.Quantity, 0)
	}
}

func TestGetForecast_MenosDeDosSalidas(t *testing.T) {
	t0 := time.Now()
	for _, movs := range [][]*entity.Movement{nil, outgoing(t0, 5)} {
		uc := newUseCase(&fakeAnalyticsRepo{outgoing: movs})
		series, err := uc.GetForecast(context.Background(), "p1")
		require.NoError(t, err)
		assert.Empty(t, series)
		assert.NotNil(t, series, "serie vacía, no nula")
	}
}

func TestGetForecast_FalloDelModeloDegradaAVacio(t *testing.T) {
	repo := &fakeAnalyticsRepo{outgoing: outgoing(time.Now(), 5, 6, 7)}
	uc := analytics.NewAnalyticsUseCase(repo, failingForecaster{}, timeseries.NewIsolationForest())

	series, err := uc.GetForecast(context.Background(), "p1")
	require.NoError(t, err, "los fallos numéricos no se propagan")
	assert.Empty(t, series)
	assert.NotNil(t, series)
}

func TestGetForecast_ErrorDeRepositorio(t *testing.T) {
	repoErr := errors.New("conexión perdida")
	uc := newUseCase(&fakeAnalyticsRepo{err: repoErr})

	_, err := uc.GetForecast(context.Background(), "p1")
	assert.ErrorIs(t, err, repoErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anomalías
// ──────────────────────────────────────────────────────────────────────────────

// movimientos compactos de venta + uno extremo al frente (orden descendente).
func anomalyRows() []repository.MovementWithProduct {
	t0 := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	rows := []repository.MovementWithProduct{{
		Movement: entity.Movement{
			ID: "extremo", ProductID: "p1", ChangeQuantity: -500,
			Reason:    "ajuste manual",
			CreatedAt: time.Date(2026, 3, 20, 3, 0, 0, 0, time.UTC),
		},
		ProductName: "Tornillos",
	}}
	for i := 0; i < 14; i++ {
		rows = append(rows, repository.MovementWithProduct{
			Movement: entity.Movement{
				ID: "normal", ProductID: "p1", ChangeQuantity: -10 - i%3,
				CreatedAt: t0.Add(time.Duration(-i) * 24 * time.Hour),
			},
			ProductName: "Tornillos",
		})
	}
	return rows
}

func TestGetAnomalies_DetectaMovimientoExtremo(t *testing.T) {
	uc := newUseCase(&fakeAnalyticsRepo{global: anomalyRows()})

	anomalies, err := uc.GetAnomalies(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)

	// El movimiento extremo aparece primero (se conserva el orden de entrada)
	// enriquecido con el nombre del producto y la fecha formateada.
	first := anomalies[0]
	assert.Equal(t, "extremo", first.ID)
	assert.Equal(t, "Tornillos", first.ProductName)
	assert.Equal(t, -500, first.ChangeQuantity)
	assert.Equal(t, "ajuste manual", first.Reason)
	assert.Equal(t, "2026-03-20 03:00", first.EventDate)

	// El grueso de los movimientos normales no se marca.
	assert.Less(t, len(anomalies), len(anomalyRows())/2)
}

func TestGetAnomalies_PorProducto(t *testing.T) {
	uc := newUseCase(&fakeAnalyticsRepo{
		byProduct: map[string][]repository.MovementWithProduct{"p1": anomalyRows()},
	})

	anomalies, err := uc.GetAnomalies(context.Background(), "p1")
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)
	assert.Equal(t, "extremo", anomalies[0].ID)

	// Producto sin historial suficiente: vacío.
	anomalies, err = uc.GetAnomalies(context.Background(), "p2")
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestGetAnomalies_HistorialInsuficiente(t *testing.T) {
	rows := anomalyRows()[:9]
	uc := newUseCase(&fakeAnalyticsRepo{global: rows})

	anomalies, err := uc.GetAnomalies(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, anomalies)
	assert.NotNil(t, anomalies, "vacío, no nulo: el caller serializa [] y no null")
}

func TestGetAnomalies_Determinista(t *testing.T) {
	uc := newUseCase(&fakeAnalyticsRepo{global: anomalyRows()})

	first, err := uc.GetAnomalies(context.Background(), "")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := uc.GetAnomalies(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Series y KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestGetHistoricalSeries_MapeaPuntos(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(&fakeAnalyticsRepo{historical: []repository.SeriesPoint{
		{Timestamp: t0, Quantity: 100},
		{Timestamp: t0.Add(time.Hour), Quantity: 95},
	}})

	series, err := uc.GetHistoricalSeries(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, t0, series[0].Timestamp)
	assert.Equal(t, 100, series[0].Quantity)
	assert.Equal(t, 95, series[1].Quantity)
}

func TestGetScheduledSeries_SinMovimientos(t *testing.T) {
	uc := newUseCase(&fakeAnalyticsRepo{})

	series, err := uc.GetScheduledSeries(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, series)
	assert.NotNil(t, series)
}

func TestGetDashboardKPIs_MapeaContadores(t *testing.T) {
	uc := newUseCase(&fakeAnalyticsRepo{kpis: repository.DashboardKPIs{
		TotalProducts: 42,
		LowStockItems: 7,
	}})

	kpis, err := uc.GetDashboardKPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, kpis.TotalProducts)
	assert.Equal(t, 7, kpis.LowStockItems)
}

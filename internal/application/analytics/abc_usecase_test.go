package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/classification"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entity.StockItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

func (m *MockItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

func (m *MockItemRepository) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, status entity.StockStatus, unitCost decimal.Decimal) error {
	return m.Called(ctx, id, quantity, status, unitCost).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entity.StockItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	args := m.Called(ctx, limit, offset)
	items, _ := args.Get(0).([]*entity.StockItem)
	return items, args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(ctx context.Context, movement *entity.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockMovementRepository) ListByItem(ctx context.Context, itemID string, order repository.SortOrder, limit, offset int) ([]*entity.Movement, error) {
	args := m.Called(ctx, itemID, order, limit, offset)
	list, _ := args.Get(0).([]*entity.Movement)
	return list, args.Error(1)
}

func (m *MockMovementRepository) CountByItem(ctx context.Context, itemID string) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockMovementRepository) SumOutboundSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, since)
	sums, _ := args.Get(0).(map[string]decimal.Decimal)
	return sums, args.Error(1)
}

type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) GenerateABCReport(ctx context.Context, report *dto.ABCReportResponse) ([]byte, error) {
	args := m.Called(ctx, report)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(id, price, cost string) *entity.StockItem {
	return &entity.StockItem{ID: id, Name: "Ítem " + id, Unit: "kg", UnitPrice: dec(price), UnitCost: dec(cost)}
}

func thresholds(a, b, c int64) classification.Thresholds {
	return classification.Thresholds{A: decimal.NewFromInt(a), B: decimal.NewFromInt(b), C: decimal.NewFromInt(c)}
}

// Valores anuales [20, 100, 30, 50] → orden i2, i4, i3, i1 con acumulado [50, 75, 90, 100].
func fourItems() ([]*entity.StockItem, map[string]decimal.Decimal) {
	items := []*entity.StockItem{item("i1", "2", "1"), item("i2", "10", "4"), item("i3", "3", "1"), item("i4", "5", "5")}
	sums := map[string]decimal.Decimal{"i1": dec("10"), "i2": dec("10"), "i3": dec("10"), "i4": dec("10")}
	return items, sums
}

func newUseCase(items *MockItemRepository, movs *MockMovementRepository, gen analytics.ReportPDFGenerator) *analytics.ABCUseCase {
	return analytics.NewABCUseCase(items, movs, gen, thresholds(70, 90, 100), 365, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestABCReport_ClasificaPorValorDeConsumo(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	items, sums := fourItems()
	itemRepo.On("List", mock.Anything, 500, 0).Return(items, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(sums, nil)

	report, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{})
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	gotIDs := []string{report.Rows[0].ItemID, report.Rows[1].ItemID, report.Rows[2].ItemID, report.Rows[3].ItemID}
	assert.Equal(t, []string{"i2", "i4", "i3", "i1"}, gotIDs)
	gotCats := []string{report.Rows[0].Category, report.Rows[1].Category, report.Rows[2].Category, report.Rows[3].Category}
	assert.Equal(t, []string{"A", "B", "B", "C"}, gotCats)
	assert.Equal(t, 1, report.Rows[0].Rank)
	assert.True(t, report.Rows[1].CumulativePercentage.Equal(dec("75")))
	assert.True(t, report.Total.Equal(dec("200")))
	assert.Equal(t, "value", report.Basis)
	assert.Equal(t, 365, report.PeriodDays)

	require.Len(t, report.Summary, 3)
	assert.Equal(t, "B", report.Summary[1].Category)
	assert.Equal(t, 2, report.Summary[1].Count)
	assert.True(t, report.Summary[1].ValuePercentage.Equal(dec("40")))

	itemRepo.AssertExpectations(t)
	movRepo.AssertExpectations(t)
}

func TestABCReport_CriterioMargenUsaCostoPromedio(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	items, sums := fourItems()
	itemRepo.On("List", mock.Anything, 500, 0).Return(items, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(sums, nil)

	report, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{Basis: classification.ByMargin})
	require.NoError(t, err)

	// Márgenes: i1 10, i2 60, i3 20, i4 0
	assert.Equal(t, "i2", report.Rows[0].ItemID)
	assert.True(t, report.Rows[0].AnnualValue.Equal(dec("60")))
	assert.Equal(t, "i4", report.Rows[3].ItemID)
	assert.True(t, report.Total.Equal(dec("90")))
}

func TestABCReport_PeriodoAnualizaElConsumo(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	itemRepo.On("List", mock.Anything, 500, 0).Return([]*entity.StockItem{item("x", "1", "0")}, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(map[string]decimal.Decimal{"x": dec("10")}, nil)

	report, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{PeriodDays: 73})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].AnnualConsumption.Equal(dec("50")), "10 * 365/73, got %s", report.Rows[0].AnnualConsumption)
	assert.Equal(t, "A", report.Rows[0].Category)
}

func TestABCReport_UmbralesInvalidosNoConsultanLaBase(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	bad := thresholds(90, 80, 100)

	_, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{Thresholds: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidThresholds)
	itemRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	movRepo.AssertNotCalled(t, "SumOutboundSince", mock.Anything, mock.Anything)
}

func TestABCReport_SinConsumoEsDegenerado(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	itemRepo.On("List", mock.Anything, 500, 0).Return([]*entity.StockItem{item("a", "1", "0"), item("b", "2", "0")}, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(map[string]decimal.Decimal{}, nil)

	_, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{})
	assert.ErrorIs(t, err, domain.ErrDegenerateTotal)
}

func TestABCReport_SinItemsDevuelveReporteVacio(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	itemRepo.On("List", mock.Anything, 500, 0).Return([]*entity.StockItem{}, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(map[string]decimal.Decimal{}, nil)

	report, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{})
	require.NoError(t, err)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
	assert.Len(t, report.Summary, 3)
}

func TestABCReport_ErrorDelRepositorio(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	boom := errors.New("conexión cerrada")
	itemRepo.On("List", mock.Anything, 500, 0).Return(nil, boom)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(map[string]decimal.Decimal{}, nil)

	_, err := newUseCase(itemRepo, movRepo, nil).Report(context.Background(), analytics.ABCRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestABCReport_PeriodoFueraDeRango(t *testing.T) {
	_, err := newUseCase(new(MockItemRepository), new(MockMovementRepository), nil).
		Report(context.Background(), analytics.ABCRequest{PeriodDays: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestABCReportPDF_DelegaEnElGenerador(t *testing.T) {
	itemRepo := new(MockItemRepository)
	movRepo := new(MockMovementRepository)
	gen := new(MockPDFGenerator)
	items, sums := fourItems()
	itemRepo.On("List", mock.Anything, 500, 0).Return(items, nil)
	movRepo.On("SumOutboundSince", mock.Anything, mock.Anything).Return(sums, nil)
	gen.On("GenerateABCReport", mock.Anything, mock.MatchedBy(func(r *dto.ABCReportResponse) bool {
		return len(r.Rows) == 4
	})).Return([]byte("%PDF-1.3"), nil)

	b, filename, err := newUseCase(itemRepo, movRepo, gen).ReportPDF(context.Background(), analytics.ABCRequest{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), b)
	assert.Contains(t, filename, "reporte-abc-value-")
	gen.AssertExpectations(t)
}

func TestABCReportPDF_SinGenerador(t *testing.T) {
	_, _, err := newUseCase(new(MockItemRepository), new(MockMovementRepository), nil).
		ReportPDF(context.Background(), analytics.ABCRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

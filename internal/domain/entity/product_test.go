package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests ComputeStatus — el status es una función pura de stock vs minStock
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeStatus_StockIgualAlMinimo_EsLowStock(t *testing.T) {
	// stock == minStock cuenta como bajo stock (<=, no <)
	assert.Equal(t, entity.StatusLowStock, entity.ComputeStatus(5, 5, entity.StatusActive))
}

func TestComputeStatus_StockPorDebajoDelMinimo_EsLowStock(t *testing.T) {
	assert.Equal(t, entity.StatusLowStock, entity.ComputeStatus(2, 5, entity.StatusActive))
	// incluso un producto inactive se reporta como low-stock si el stock cae
	assert.Equal(t, entity.StatusLowStock, entity.ComputeStatus(0, 5, entity.StatusInactive))
}

func TestComputeStatus_RecuperaActiveDesdeLowStock(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.ComputeStatus(6, 5, entity.StatusLowStock))
}

func TestComputeStatus_PreservaInactiveExplicito(t *testing.T) {
	// inactive solo lo quita un operador, nunca el motor de movimientos
	assert.Equal(t, entity.StatusInactive, entity.ComputeStatus(6, 5, entity.StatusInactive))
}

func TestComputeStatus_PreservaActive(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.ComputeStatus(100, 5, entity.StatusActive))
}

func TestComputeStatus_EstadoVacioSeNormalizaAActive(t *testing.T) {
	assert.Equal(t, entity.StatusActive, entity.ComputeStatus(10, 5, ""))
}

func TestRecalculateStatus_MutaElProducto(t *testing.T) {
	p := &entity.Product{Stock: 3, MinStock: 5, Status: entity.StatusActive}
	p.RecalculateStatus()
	assert.Equal(t, entity.StatusLowStock, p.Status)

	p.Stock = 10
	p.RecalculateStatus()
	assert.Equal(t, entity.StatusActive, p.Status)
}

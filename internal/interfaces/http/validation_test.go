package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stockyhq/stocky-api/internal/application/dto"
)

func validCreateProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:     "Cable HDMI",
		Category: "cat-1",
		Stock:    4,
		Price:    decimal.NewFromInt(15),
		MinStock: 1,
		MaxStock: 10,
		SKU:      "CAB-001",
	}
}

func TestCreateProductRequest_MaxStockCeroEsValido(t *testing.T) {
	in := validCreateProductRequest()
	in.MaxStock = 0
	assert.NoError(t, validate.Struct(in))
}

func TestCreateProductRequest_MaxStockNegativoEsInvalido(t *testing.T) {
	in := validCreateProductRequest()
	in.MaxStock = -1
	assert.Error(t, validate.Struct(in))
}

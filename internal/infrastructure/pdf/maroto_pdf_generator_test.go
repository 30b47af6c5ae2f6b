package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/report"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/infrastructure/pdf"
)

func TestGenerateOrderReport(t *testing.T) {
	orders := []entity.Order{{OrderID: "O1", CustomerID: "C1", OrderDate: "2026-10-01", TotalAmount: decimal.NewFromInt(20000), Status: entity.OrderPending}}
	items := []entity.OrderItem{{ID: "1", OrderID: "O1", ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(10000)}}
	products := []entity.Product{{ProductID: "P1", Name: "Kopi"}}
	r := report.Join(orders, items, products, time.Now())

	doc, err := pdf.NewMarotoPDFGenerator("Toko").GenerateOrderReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateOrderReport_SinPedidos(t *testing.T) {
	r := report.Join(nil, nil, nil, time.Now())
	doc, err := pdf.NewMarotoPDFGenerator("").GenerateOrderReport(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

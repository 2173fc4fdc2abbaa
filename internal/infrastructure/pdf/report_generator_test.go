package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/pdf"
)

func TestReportGenerator_Deliveries(t *testing.T) {
	g := pdf.NewReportGenerator("deliveryops")
	assert.Equal(t, ports.FormatPDF, g.Format())

	data, err := g.ExportDeliveries(context.Background(), &dto.DeliveryReportDTO{
		GeneratedOn: "2026-03-10",
		Rows: []dto.DeliveryReportRow{{
			ClientName: "Maria", Products: "Gás P13", Quantity: decimal.NewFromInt(2),
			Value: decimal.NewFromInt(220), Date: "10/03/2026", Time: "09:00", StatusLabel: "Entregue",
		}},
		Count:      1,
		TotalValue: decimal.NewFromInt(220),
		ByProduct:  []dto.KeySummaryDTO{{Key: "Gás P13", Count: 1}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReportGenerator_EmptyExpenses(t *testing.T) {
	data, err := pdf.NewReportGenerator("").ExportExpenses(context.Background(), &dto.ExpenseReportDTO{GeneratedOn: "2026-03-10"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

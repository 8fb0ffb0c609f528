package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

func TestWriteProducts_RoundTripsRows(t *testing.T) {
	products := []*domain.Product{
		{
			ID:           1,
			Name:         "LIPSTAR",
			Category:     "Lip Care",
			MinimumStock: 3,
			SalePrice:    decimal.NewFromInt(275),
			DemoPrice:    decimal.NewFromInt(550),
			IsActive:     true,
			CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		nil,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	require.Equal(t, SheetName, sheet.Name)
	require.Len(t, sheet.Rows, 2)

	header := sheet.Rows[0].Cells
	require.Equal(t, "Name", header[1].String())

	row := sheet.Rows[1].Cells
	require.Equal(t, "LIPSTAR", row[1].String())
	require.Equal(t, "Lip Care", row[2].String())
	require.Equal(t, "275.00", row[5].String())
	require.Equal(t, "550.00", row[7].String())
	require.Equal(t, "2024-01-02 03:04:05", row[12].String())
}

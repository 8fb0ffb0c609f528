// Package export renders catalog products as spreadsheets.
package export

import (
	"io"

	"github.com/tealeg/xlsx"

	"github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

// ContentType is the media type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the single sheet holding product rows.
const SheetName = "Products"

var headers = []string{
	"ID", "Name", "Category", "CurrentStock", "MinimumStock",
	"SalePrice", "PurchasePrice", "DemoPrice", "Active", "LowStock",
	"Description", "ImageURL", "CreatedAt",
}

// Workbook builds an in-memory workbook with a header row followed by one row per product.
func Workbook(products []*domain.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, err
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.CurrentStock)
		row.AddCell().SetValue(p.MinimumStock)
		row.AddCell().SetValue(p.SalePrice.StringFixed(2))
		row.AddCell().SetValue(p.PurchasePrice.StringFixed(2))
		row.AddCell().SetValue(p.DemoPrice.StringFixed(2))
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.IsLowStock())
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// WriteProducts streams the workbook to w.
func WriteProducts(w io.Writer, products []*domain.Product) error {
	file, err := Workbook(products)
	if err != nil {
		return err
	}
	return file.Write(w)
}

package order

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Number", "Customer", "Email", "Items", "Subtotal", "Discount", "Total", "Status", "Created"}

// BuildXLSX renders the orders into a spreadsheet, one row per order.
func BuildXLSX(orders []Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, o := range orders {
		itemCount := 0
		for _, item := range o.Items {
			itemCount += item.Quantity
		}

		values := []interface{}{
			o.Number,
			o.CustomerName,
			o.Email,
			itemCount,
			o.Subtotal,
			o.Discount,
			o.Total,
			o.Status,
			o.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

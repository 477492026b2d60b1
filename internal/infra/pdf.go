package infra

// pdf.go — Customer debt statement generation using go-pdf/fpdf.
// Produces an A4 statement with the customer header, one row per ledger
// entry (date, type, line items, amount) and the outstanding balance:
// credits add to the balance, payments subtract.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateStatementPDF writes a debt statement for the customer's ledger to
// storagePath (created if needed) and returns the absolute file path.
func GenerateStatementPDF(customer *model.Customer, transactions []model.DebtTransaction, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("statement_%s.pdf", customer.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Debt Statement", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Customer: %s", customer.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Contact: %s", customer.ContactInfo), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(30, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(85, 7, "Items", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	balance := decimal.Zero
	for _, tx := range transactions {
		items := ""
		for i, item := range tx.Items {
			if i > 0 {
				items += ", "
			}
			name := item.ProductID.String()
			if item.Product != nil {
				name = item.Product.Name
			}
			items += fmt.Sprintf("%s x%d", name, item.Quantity)
		}

		amount := tx.TotalAmount
		if tx.Type == model.DebtTypePayment {
			balance = balance.Sub(amount)
		} else {
			balance = balance.Add(amount)
		}

		pdf.CellFormat(30, 7, tx.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, tx.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(85, 7, items, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 8, "Outstanding balance", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, balance.StringFixed(2), "1", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write statement: %w", err)
	}
	return filePath, nil
}

package policy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

// RenderReceipt produces the downloadable PDF receipt for an issued policy.
func RenderReceipt(policy models.Policy) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Policy Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Policy Receipt")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Policy ID", policy.PolicyID)
	writeRow(pdf, "Payment ID", policy.PaymentID)
	writeRow(pdf, "Holder", policy.Holder)
	writeRow(pdf, "Product", policy.Product)
	writeRow(pdf, "Plan", titleCase(string(policy.Plan)))
	writeRow(pdf, "Premium", fmt.Sprintf("INR %d", policy.Premium))
	if policy.Financing != nil {
		writeRow(pdf, "Financing", fmt.Sprintf("%d x INR %.2f / month",
			policy.Financing.Months, policy.Financing.Monthly))
	}
	writeRow(pdf, "Issued", policy.IssuedAt.Format("02 Jan 2006 15:04 MST"))

	if policy.Degraded {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 8, "Issuance confirmation pending. Your coverage is active.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

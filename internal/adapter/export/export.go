// Package export gera planilhas dos lançamentos financeiros em XLSX e CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
)

// Format é o formato de saída da exportação
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat interpreta o parâmetro format; vazio significa XLSX
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("formato de exportação desconhecido: %q", s)
}

// ContentType devolve o tipo MIME do formato
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName monta o nome do arquivo de download
func (f Format) FileName(now time.Time) string {
	return fmt.Sprintf("lancamentos_%s.%s", now.Format("20060102"), f)
}

// SheetName é o nome da aba da planilha XLSX
const SheetName = "Lançamentos"

var headers = []string{
	"Tipo", "Descrição", "Valor", "Vencimento", "Status",
	"Pagamento", "Forma de pagamento", "Boleto", "Parcela",
}

var kindLabels = map[finance.Kind]string{
	finance.KindIncome:  "Receita",
	finance.KindExpense: "Despesa",
}

var statusLabels = map[finance.Status]string{
	finance.StatusPending: "Pendente",
	finance.StatusNearDue: "A vencer",
	finance.StatusOverdue: "Vencido",
	finance.StatusPaid:    "Pago",
}

// Write grava os lançamentos em w no formato f
func Write(w io.Writer, f Format, entries []*finance.Entry) error {
	if f == FormatCSV {
		return WriteCSV(w, entries)
	}
	return WriteXLSX(w, entries)
}

// WriteXLSX grava uma planilha com uma linha por lançamento
func WriteXLSX(w io.Writer, entries []*finance.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("erro ao criar planilha: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("erro ao remover aba padrão: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		amount, _ := e.Amount.Float64()
		row := []interface{}{
			kindLabels[e.Kind],
			e.Description,
			amount,
			e.DueDate.Format("2006-01-02"),
			statusLabels[e.Status],
			paymentDate(e),
			e.PaymentMethod,
			e.BoletoCode,
			installment(e),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("erro ao escrever linha %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 10)
	_ = f.SetColWidth(SheetName, "B", "B", 40)
	_ = f.SetColWidth(SheetName, "C", "I", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("erro ao gravar planilha: %w", err)
	}
	return nil
}

// WriteCSV grava os mesmos campos da planilha em CSV
func WriteCSV(w io.Writer, entries []*finance.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			kindLabels[e.Kind],
			e.Description,
			e.Amount.StringFixed(2),
			e.DueDate.Format("2006-01-02"),
			statusLabels[e.Status],
			paymentDate(e),
			e.PaymentMethod,
			e.BoletoCode,
			installment(e),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func paymentDate(e *finance.Entry) string {
	if e.PaymentDate == nil {
		return ""
	}
	return e.PaymentDate.Format("2006-01-02")
}

func installment(e *finance.Entry) string {
	if !e.IsInstallment {
		return ""
	}
	return strconv.Itoa(e.CurrentInstallment) + "/" + strconv.Itoa(e.TotalInstallments)
}

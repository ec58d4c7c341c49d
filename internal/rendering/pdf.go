package rendering

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	pdfFont        = "Helvetica"
	pdfLineHeight  = 6.0
	pdfBottomLimit = 15.0
)

type PDFRenderer struct {
	formatter *Formatter
	tempDir   string
}

func NewPDFRenderer(formatter *Formatter, tempDir string) *PDFRenderer {
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &PDFRenderer{
		formatter: formatter,
		tempDir:   tempDir,
	}
}

// Write gera o PDF diretamente no writer, sem arquivo temporário
func (r *PDFRenderer) Write(w io.Writer, report *domain.Report) error {
	doc := r.document(report)
	if err := doc.Output(w); err != nil {
		return errors.Wrap(err, "erro ao gerar PDF")
	}
	return nil
}

// WriteTempFile grava o PDF no diretório temporário e retorna o caminho.
// Quem chama é responsável por remover o arquivo.
func (r *PDFRenderer) WriteTempFile(report *domain.Report) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar nome do arquivo")
	}

	path := filepath.Join(r.tempDir, fmt.Sprintf("%s-report-%s.pdf", report.Type, id))

	doc := r.document(report)
	if err := doc.OutputFileAndClose(path); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "erro ao gravar PDF temporário")
	}

	return path, nil
}

func (r *PDFRenderer) document(report *domain.Report) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(report.Title, true)
	pdf.SetCreator("travellr-reports", true)
	pdf.SetAutoPageBreak(true, pdfBottomLimit)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(0, pdfLineHeight, tr("Period: "+report.Period.String()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, "Generated: "+report.GeneratedAt.UTC().Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont(pdfFont, "", 11)
	for _, metric := range report.Summary {
		line := fmt.Sprintf("%s: %s", Humanize(metric.Key), r.formatter.FormatSummaryValue(metric.Value))
		pdf.CellFormat(0, pdfLineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 8, "Data", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	records := report.Records()
	if len(records) == 0 {
		pdf.SetFont(pdfFont, "I", 11)
		pdf.CellFormat(0, pdfLineHeight, "No data for this period.", "", 1, "L", false, 0, "")
		return pdf
	}

	for i, record := range records {
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("#%d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, field := range record {
			line := fmt.Sprintf("%s: %s", Humanize(field.Name), r.formatter.FormatFieldValue(field.Value))
			pdf.MultiCell(0, pdfLineHeight-1, tr(line), "", "L", false)
		}
		pdf.Ln(2)
	}

	return pdf
}

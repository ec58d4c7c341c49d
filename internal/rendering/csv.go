package rendering

import (
	"encoding/csv"
	"io"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/pkg/errors"
)

type CSVRenderer struct {
	formatter *Formatter
}

func NewCSVRenderer(formatter *Formatter) *CSVRenderer {
	return &CSVRenderer{formatter: formatter}
}

// Write grava uma linha de cabeçalho e uma linha por registro.
// O cabeçalho é a união dos campos na ordem em que aparecem.
func (r *CSVRenderer) Write(w io.Writer, report *domain.Report) error {
	records := report.Records()

	header := make([]string, 0)
	index := make(map[string]int)
	for _, record := range records {
		for _, field := range record {
			if _, ok := index[field.Name]; !ok {
				index[field.Name] = len(header)
				header = append(header, field.Name)
			}
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho CSV")
	}

	for _, record := range records {
		line := make([]string, len(header))
		for _, field := range record {
			line[index[field.Name]] = r.formatter.FormatFieldValue(field.Value)
		}
		if err := writer.Write(line); err != nil {
			return errors.Wrap(err, "erro ao escrever linha CSV")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "erro ao finalizar CSV")
}

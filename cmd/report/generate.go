package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
	formatHTML = "html"
	formatCSV  = "csv"
)

type generateCmd struct {
	app    *app
	flags  reportFlags
	format string
	out    string
}

func newGenerateCmd(a *app) *cobra.Command {
	gc := &generateCmd{app: a}
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Gera um relatório e grava no formato escolhido",
		PreRunE: a.load,
		RunE:    gc.run,
	}

	gc.flags.register(cmd)
	cmd.Flags().StringVarP(&gc.format, "format", "f", formatJSON, "Formato de saída (json, pdf, html, csv)")
	cmd.Flags().StringVarP(&gc.out, "out", "o", "-", "Arquivo de saída; - para stdout")

	return cmd
}

func (gc *generateCmd) run(cmd *cobra.Command, _ []string) error {
	switch gc.format {
	case formatJSON, formatPDF, formatHTML, formatCSV:
	default:
		return fmt.Errorf("formato inválido %q: use json, pdf, html ou csv", gc.format)
	}

	report, err := gc.app.generate(cmd.Context(), &gc.flags)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if gc.out != "-" {
		f, err := os.Create(gc.out)
		if err != nil {
			return fmt.Errorf("erro ao criar %s: %w", gc.out, err)
		}
		defer f.Close()
		w = f
	}

	return gc.write(w, report)
}

func (gc *generateCmd) write(w io.Writer, report *domain.Report) error {
	formatter := gc.app.formatter()

	switch gc.format {
	case formatPDF:
		return rendering.NewPDFRenderer(formatter, gc.app.cfg.Report.TempDir).Write(w, report)
	case formatCSV:
		return rendering.NewCSVRenderer(formatter).Write(w, report)
	case formatHTML:
		renderer, err := rendering.NewHTMLRenderer(formatter)
		if err != nil {
			return err
		}
		html, err := renderer.Render(report)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

package main

import (
	"fmt"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/integrator/mail/mailclient"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type sendCmd struct {
	app        *app
	flags      reportFlags
	recipients []string
}

func newSendCmd(a *app) *cobra.Command {
	sc := &sendCmd{app: a}
	cmd := &cobra.Command{
		Use:     "send",
		Short:   "Gera um relatório e envia por email com o PDF anexo",
		PreRunE: a.load,
		RunE:    sc.run,
	}

	sc.flags.register(cmd)
	cmd.Flags().StringSliceVar(&sc.recipients, "to", nil, "Destinatários separados por vírgula")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (sc *sendCmd) run(cmd *cobra.Command, _ []string) error {
	// valida destinatários antes de consultar o banco
	if _, err := delivering.NormalizeRecipients(sc.recipients); err != nil {
		return err
	}

	mailClient, err := mailclient.NewClient(sc.app.cfg.Mail)
	if err != nil {
		return err
	}

	formatter := sc.app.formatter()
	htmlRenderer, err := rendering.NewHTMLRenderer(formatter)
	if err != nil {
		return err
	}

	report, err := sc.app.generate(cmd.Context(), &sc.flags)
	if err != nil {
		return err
	}

	deliverer := delivering.NewDeliveryService(
		mailClient,
		rendering.NewPDFRenderer(formatter, sc.app.cfg.Report.TempDir),
		htmlRenderer,
	)

	record, err := deliverer.Deliver(cmd.Context(), report, sc.recipients)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"report_id":  record.ReportID,
		"message_id": record.MessageID,
	}).Info("Relatório enviado")
	fmt.Fprintf(cmd.OutOrStdout(), "%s enviado para %d destinatário(s)\n", report.Title, len(record.Recipients))

	return nil
}

package delivering

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/integrator/mail/mailclient/mocks"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type failingPDF struct{}

func (failingPDF) WriteTempFile(*domain.Report) (string, error) {
	return "", errors.New("disk full")
}

func testReport() *domain.Report {
	return &domain.Report{
		ID:    "rep1",
		Type:  domain.ReportTypeRevenue,
		Title: "Revenue Report",
		Period: domain.NewPeriod(
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC),
		),
		GeneratedAt: time.Date(2024, time.March, 8, 7, 0, 0, 0, time.UTC),
		Summary:     domain.Summary{{Key: "totalRevenue", Value: 2500}},
		Data: &domain.RevenueData{GroupBy: domain.GroupByDay, Rows: []domain.AggregateRow{
			{Key: "2024-03-01", Count: 5, TotalAmount: 2500, AverageAmount: 500},
		}},
	}
}

func newTestService(t *testing.T) (*DeliveryService, *mocks.MockSender) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	formatter := rendering.NewFormatter("$", 1000)
	html, err := rendering.NewHTMLRenderer(formatter)
	require.NoError(t, err)

	svc := NewDeliveryService(sender, rendering.NewPDFRenderer(formatter, t.TempDir()), html)
	svc.now = func() time.Time { return time.Date(2024, time.March, 8, 7, 5, 0, 0, time.UTC) }
	return svc, sender
}

func TestDeliverRemovesTempFileAfterSuccess(t *testing.T) {
	svc, sender := newTestService(t)
	var attachedPath string

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email domain.Email) (string, error) {
			require.Len(t, email.Attachments, 1)
			attachedPath = email.Attachments[0].Path

			_, err := os.Stat(attachedPath)
			assert.NoError(t, err, "o PDF deve existir durante o envio")

			assert.Equal(t, []string{"ops@travellr.com", "cfo@travellr.com"}, email.To)
			assert.Equal(t, "Revenue Report: 2024-03-01 to 2024-03-07", email.Subject)
			assert.Equal(t, "revenue-report_2024-03-01_2024-03-07.pdf", email.Attachments[0].Filename)
			assert.Equal(t, "application/pdf", email.Attachments[0].ContentType)
			assert.Contains(t, email.HTMLBody, "$2,500.00")
			assert.Contains(t, email.TextBody, "Total Revenue: $2,500.00")
			return "<msg-1@travellr.com>", nil
		})

	record, err := svc.Deliver(context.Background(), testReport(), []string{"ops@travellr.com", " cfo@travellr.com ", "OPS@travellr.com"})

	require.NoError(t, err)
	assert.True(t, record.Succeeded())
	assert.Equal(t, "<msg-1@travellr.com>", record.MessageID)
	assert.Equal(t, attachedPath, record.FilePath)

	_, statErr := os.Stat(attachedPath)
	assert.True(t, os.IsNotExist(statErr), "o PDF temporário deve ser removido")
}

func TestDeliverRemovesTempFileAfterSendFailure(t *testing.T) {
	svc, sender := newTestService(t)
	providerErr := errors.New("550 mailbox unavailable")
	var attachedPath string

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email domain.Email) (string, error) {
			attachedPath = email.Attachments[0].Path
			return "", providerErr
		}).
		Times(1)

	record, err := svc.Deliver(context.Background(), testReport(), []string{"ops@travellr.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSendFailed))
	assert.True(t, errors.Is(err, providerErr))

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, apiErrors.ErrExternalService, deliveryErr.Code)

	require.NotNil(t, record)
	assert.False(t, record.Succeeded())
	assert.Equal(t, providerErr.Error(), record.Error)

	_, statErr := os.Stat(attachedPath)
	assert.True(t, os.IsNotExist(statErr), "o PDF temporário deve ser removido mesmo com falha no envio")
}

func TestDeliverLogsCleanupFailure(t *testing.T) {
	svc, sender := newTestService(t)
	var removed []string
	svc.remove = func(path string) error {
		removed = append(removed, path)
		return errors.New("permission denied")
	}

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("id", nil)

	record, err := svc.Deliver(context.Background(), testReport(), []string{"ops@travellr.com"})

	require.NoError(t, err)
	assert.Equal(t, []string{record.FilePath}, removed)
	_ = os.Remove(record.FilePath)
}

func TestDeliverRejectsInvalidRecipients(t *testing.T) {
	tests := []struct {
		name       string
		recipients []string
	}{
		{name: "lista vazia", recipients: nil},
		{name: "apenas espaços", recipients: []string{" ", ""}},
		{name: "endereço inválido", recipients: []string{"ops@travellr.com", "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			record, err := svc.Deliver(context.Background(), testReport(), tt.recipients)

			assert.Nil(t, record)
			assert.True(t, errors.Is(err, ErrInvalidRecipients))
		})
	}
}

func TestDeliverRenderFailureSkipsSend(t *testing.T) {
	svc, _ := newTestService(t)
	svc.pdf = failingPDF{}

	_, err := svc.Deliver(context.Background(), testReport(), []string{"ops@travellr.com"})

	assert.True(t, errors.Is(err, ErrRenderFailed))
}

func TestNormalizeRecipients(t *testing.T) {
	got, err := NormalizeRecipients([]string{"Ops Team <ops@travellr.com>", "finance@travellr.com"})

	require.NoError(t, err)
	assert.Equal(t, []string{"ops@travellr.com", "finance@travellr.com"}, got)
}

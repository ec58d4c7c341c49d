package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFlagsFilters(t *testing.T) {
	flags := reportFlags{
		reportType: "custom",
		start:      "2024-03-01",
		end:        "2024-03-31",
		groupBy:    "status",
		vendorID:   "v-1",
		statuses:   []string{"confirmed", " refunded ", ""},
	}

	reportType, filters, err := flags.filters()
	require.NoError(t, err)

	assert.Equal(t, domain.ReportTypeCustom, reportType)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), filters.Period.Start)
	assert.Equal(t, domain.GroupByStatus, filters.GroupBy)
	assert.Equal(t, "v-1", filters.VendorID)
	assert.Equal(t, []domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusRefunded}, filters.Statuses)
}

func TestReportFlagsFiltersErrors(t *testing.T) {
	_, _, err := (&reportFlags{reportType: "inventory", start: "2024-03-01", end: "2024-03-31"}).filters()
	assert.Error(t, err)

	_, _, err = (&reportFlags{reportType: "revenue", start: "2024-03-01"}).filters()
	assert.ErrorContains(t, err, "start_date and end_date are required")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	cmd := newGenerateCmd(&app{})
	gc := &generateCmd{app: &app{}, format: "xlsx"}

	err := gc.run(cmd, nil)

	assert.ErrorContains(t, err, "formato inválido")
}

func TestHashKeyCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newHashKeyCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"s3cret"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "$2a$")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"generate", "send", "token", "hash-key"} {
		assert.True(t, names[want], want)
	}
}

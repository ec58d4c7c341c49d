package domain

import (
	"bytes"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportType identifica a variante de relatório
type ReportType string

const (
	ReportTypeRevenue ReportType = "revenue"
	ReportTypeBooking ReportType = "booking"
	ReportTypeVendor  ReportType = "vendor"
	ReportTypeCustom  ReportType = "custom"
)

var reportTypes = []ReportType{ReportTypeRevenue, ReportTypeBooking, ReportTypeVendor, ReportTypeCustom}

func ReportTypes() []ReportType {
	return append([]ReportType(nil), reportTypes...)
}

func ParseReportType(value string) (ReportType, error) {
	for _, t := range reportTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown report type: %s", value)
}

// Title retorna o título exibido no documento
func (t ReportType) Title() string {
	switch t {
	case ReportTypeRevenue:
		return "Revenue Report"
	case ReportTypeBooking:
		return "Booking Report"
	case ReportTypeVendor:
		return "Vendor Performance Report"
	case ReportTypeCustom:
		return "Custom Report"
	}
	return "Report"
}

// Report é criado por requisição e descartado após renderização ou envio
type Report struct {
	ID          string     `json:"id"`
	Type        ReportType `json:"type"`
	Title       string     `json:"title"`
	Period      Period     `json:"period"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Summary     Summary    `json:"summary"`
	Data        ReportData `json:"data"`
}

// Records retorna as linhas de dados na ordem de exibição
func (r *Report) Records() []Record {
	if r.Data == nil {
		return nil
	}
	return r.Data.Records()
}

// Metric é uma entrada do resumo
type Metric struct {
	Key   string
	Value float64
}

// Summary mantém as métricas na ordem em que foram calculadas
type Summary []Metric

func (s Summary) Value(key string) float64 {
	for _, m := range s {
		if m.Key == key {
			return m.Value
		}
	}
	return 0
}

func (s Summary) Keys() []string {
	keys := make([]string, len(s))
	for i, m := range s {
		keys[i] = m.Key
	}
	return keys
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(s), func(i int) (string, any) { return s[i].Key, s[i].Value })
}

// Field é um par nome/valor de uma linha de dados
type Field struct {
	Name  string
	Value any
}

// Record é uma linha de dados com campos ordenados
type Record []Field

func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(r), func(i int) (string, any) { return r[i].Name, r[i].Value })
}

func marshalOrdered(n int, at func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := at(i)
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReportData é a parte variável do relatório, uma variante por tipo
type ReportData interface {
	Kind() ReportType
	Records() []Record
}

type RevenueData struct {
	GroupBy GroupBy        `json:"groupBy"`
	Rows    []AggregateRow `json:"rows"`
}

func (d *RevenueData) Kind() ReportType { return ReportTypeRevenue }

func (d *RevenueData) Records() []Record {
	return aggregateRecords(d.Rows)
}

type BookingData struct {
	TrendGroupBy GroupBy        `json:"trendGroupBy"`
	ByStatus     []AggregateRow `json:"byStatus"`
	Trend        []AggregateRow `json:"trend"`
	ByPromoCode  []AggregateRow `json:"byPromoCode"`
}

func (d *BookingData) Kind() ReportType { return ReportTypeBooking }

// Records concatena as três seções, identificando cada linha pela seção
func (d *BookingData) Records() []Record {
	records := make([]Record, 0, len(d.ByStatus)+len(d.Trend)+len(d.ByPromoCode))
	sections := []struct {
		name string
		rows []AggregateRow
	}{
		{"status", d.ByStatus},
		{string(d.TrendGroupBy), d.Trend},
		{"promoCode", d.ByPromoCode},
	}
	for _, s := range sections {
		for _, row := range s.rows {
			records = append(records, append(Record{{Name: "section", Value: s.name}}, row.Record()...))
		}
	}
	return records
}

type VendorData struct {
	Vendors []VendorAggregateRow `json:"vendors"`
}

func (d *VendorData) Kind() ReportType { return ReportTypeVendor }

func (d *VendorData) Records() []Record {
	records := make([]Record, len(d.Vendors))
	for i, v := range d.Vendors {
		records[i] = v.Record()
	}
	return records
}

type CustomData struct {
	GroupBy  GroupBy         `json:"groupBy"`
	Statuses []BookingStatus `json:"statuses,omitempty"`
	Rows     []AggregateRow  `json:"rows"`
}

func (d *CustomData) Kind() ReportType { return ReportTypeCustom }

func (d *CustomData) Records() []Record {
	return aggregateRecords(d.Rows)
}

func aggregateRecords(rows []AggregateRow) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return records
}

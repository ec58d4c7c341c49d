package domain

import "time"

// DeliveryRecord existe apenas durante um envio
type DeliveryRecord struct {
	ReportID   string     `json:"reportId"`
	ReportType ReportType `json:"reportType"`
	Recipients []string   `json:"recipients"`
	FilePath   string     `json:"filePath"`
	MessageID  string     `json:"messageId,omitempty"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

func (d *DeliveryRecord) Succeeded() bool {
	return d.SentAt != nil && d.Error == ""
}

type Attachment struct {
	Path        string
	Filename    string
	ContentType string
}

type Email struct {
	From        string
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}

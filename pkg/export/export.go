// Package export renders tabular datasets as downloadable documents.
package export

import (
	"fmt"
	"strings"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat normalises a user supplied format. Empty input means JSON.
func ParseFormat(raw string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatJSON, true
	case FormatJSON, FormatCSV, FormatPDF:
		return f, true
	default:
		return "", false
	}
}

// Valid reports whether f can be rendered into a file.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatPDF
}

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Footer  string
}

// Document is a rendered file ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Render encodes data as format. name is the filename without extension.
func Render(format Format, data Dataset, title, name string) (*Document, error) {
	switch format {
	case FormatCSV:
		body, err := NewCSVExporter().Render(data)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: name + ".csv", ContentType: "text/csv", Body: body}, nil
	case FormatPDF:
		body, err := NewPDFExporter().Render(data, title)
		if err != nil {
			return nil, err
		}
		return &Document{Filename: name + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

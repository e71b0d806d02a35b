// Package extract pulls plain text out of supporting documents so it can be
// quoted to the summarizer.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"aerogap-backend/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimeText = "text/plain"
	mimeCSV  = "text/csv"

	extractedSuffix = ".extracted.txt"
)

// ErrUnsupported is returned for formats without a text extractor.
var ErrUnsupported = errors.New("unsupported mime type")

// ExtractText pulls text from a stored object. A derived .extracted.txt copy
// is reused when present and written otherwise.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	extractedKey := fileKey + extractedSuffix
	if cached, err := store.Open(ctx, extractedKey); err == nil {
		defer cached.Close()
		raw, err := io.ReadAll(cached)
		if err == nil {
			return string(raw), nil
		}
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", eris.Wrapf(err, "extract text key=%s mime=%s", fileKey, mimeType)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", eris.Wrapf(err, "extract text key=%s mime=%s: read", fileKey, mimeType)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", eris.Wrapf(err, "extract text key=%s mime=%s", fileKey, mimeType)
	}

	if _, err := store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", eris.Wrapf(err, "extract text key=%s: save derived copy", fileKey)
	}
	return text, nil
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeXLSX:
		return extractXLSX(data)
	case mimeCSV:
		return extractCSV(data)
	case mimeText:
		if !utf8.Valid(data) {
			return "", eris.New("text file is not valid UTF-8")
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", eris.Wrapf(ErrUnsupported, "%s: %s", ErrUnsupported.Error(), normalized)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "open pdf")
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", eris.Wrap(err, "read pdf text")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "open docx")
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// extractXLSX renders every sheet as tab separated rows under a sheet heading.
func extractXLSX(data []byte) (string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return "", eris.Wrap(err, "open xlsx")
	}
	var buf strings.Builder
	for _, sheet := range f.Sheets {
		buf.WriteString("# ")
		buf.WriteString(sheet.Name)
		buf.WriteString("\n")
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, strings.TrimSpace(cell.String()))
			}
			line := strings.TrimRight(strings.Join(cells, "\t"), "\t")
			if line == "" {
				continue
			}
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractCSV(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return "", eris.Wrap(err, "read csv")
	}
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, strings.Join(rec, "\t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch clean {
	case "application/zip", "application/octet-stream", "":
		if mapped := mapOOXMLFromZip(data); mapped != "" {
			return mapped
		}
		if byExt := mimeFromExt(ext); byExt != "" {
			return byExt
		}
		return clean
	case mimeText:
		// Sniffing reports CSV files as plain text.
		if ext == ".csv" {
			return mimeCSV
		}
		return clean
	case "application/csv", "text/comma-separated-values":
		return mimeCSV
	default:
		return clean
	}
}

func mimeFromExt(ext string) string {
	switch ext {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".xlsx":
		return mimeXLSX
	case ".pptx":
		return mimePPTX
	case ".txt":
		return mimeText
	case ".csv":
		return mimeCSV
	default:
		return ""
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		switch strings.ReplaceAll(f.Name, "\\", "/") {
		case "word/document.xml":
			return mimeDOCX
		case "xl/workbook.xml":
			return mimeXLSX
		case "ppt/presentation.xml":
			return mimePPTX
		}
	}
	return ""
}

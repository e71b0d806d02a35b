package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"aerogap-backend/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, "Repair Station Manual", "Section 2: Tool Control")

	text, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "rsm.docx")
	require.NoError(t, err)
	assert.Equal(t, "Repair Station Manual\nSection 2: Tool Control", text)
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), "application/zip")
}

func TestExtractTextFromBytes_PlainAndCSV(t *testing.T) {
	ctx := context.Background()

	text, err := ExtractTextFromBytes(ctx, []byte("  calibration log \n"), "text/plain; charset=utf-8", "log.txt")
	require.NoError(t, err)
	assert.Equal(t, "calibration log", text)

	csvText, err := ExtractTextFromBytes(ctx, []byte("tool,due\n\"torque wrench\",2026-05-01\n"), "text/plain; charset=utf-8", "tools.csv")
	require.NoError(t, err)
	assert.Equal(t, "tool\tdue\ntorque wrench\t2026-05-01", csvText)

	_, err = ExtractTextFromBytes(ctx, []byte{0xff, 0xfe, 0xfd}, "text/plain", "bad.txt")
	assert.Error(t, err)
}

func TestExtractTextFromBytes_XLSX(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Findings")
	require.NoError(t, err)
	for _, rowData := range [][]string{{"Finding", "Status"}, {"Expired calibration", "Open"}} {
		row := sheet.AddRow()
		for _, v := range rowData {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	text, err := ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "findings.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "# Findings\nFinding\tStatus\nExpired calibration\tOpen", text)
}

func TestExtractTextFromBytes_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExtractTextFromBytes(ctx, []byte("x"), "text/plain", "x.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractTextWritesAndReusesDerivedCopy(t *testing.T) {
	store := local.New(t.TempDir())
	ctx := context.Background()

	stored, err := store.Save(ctx, "user-1", "rsm.txt", strings.NewReader("Quality manual rev 4"))
	require.NoError(t, err)

	text, err := ExtractText(ctx, store, stored.Key, stored.MimeType, "rsm.txt")
	require.NoError(t, err)
	assert.Equal(t, "Quality manual rev 4", text)

	rc, err := store.Open(ctx, stored.Key+extractedSuffix)
	require.NoError(t, err)
	cached, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "Quality manual rev 4", string(cached))

	require.NoError(t, store.Delete(ctx, stored.Key))
	again, err := ExtractText(ctx, store, stored.Key, stored.MimeType, "rsm.txt")
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

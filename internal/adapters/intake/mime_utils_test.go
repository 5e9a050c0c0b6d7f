package intake

import (
	"encoding/base64"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestExtractCSVAttachmentsMultipart(t *testing.T) {
	csvBody := "name,amount\nJane Smith,12.50\n"
	raw := "From: bank@example.com\r\n" +
		"To: statements@example.org\r\n" +
		"Subject: Weekly statement export\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
		"\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Statements attached.\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/csv; name=export.csv\r\n" +
		"Content-Disposition: attachment; filename=export.csv\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		base64.StdEncoding.EncodeToString([]byte(csvBody)) + "\r\n" +
		"--XYZ--\r\n"

	attachments, err := extractCSVAttachments(readMessage(t, raw))
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "export.csv", attachments[0].filename)
	assert.Equal(t, csvBody, string(attachments[0].data))
}

func TestExtractCSVAttachmentsByFilename(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
		"\r\n" +
		"--XYZ\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Disposition: attachment; filename=Statements-2025.CSV\r\n" +
		"\r\n" +
		"name\r\nJane\r\n" +
		"--XYZ--\r\n"

	attachments, err := extractCSVAttachments(readMessage(t, raw))
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "Statements-2025.CSV", attachments[0].filename)
}

func TestExtractCSVAttachmentsSinglePartBody(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: text/csv\r\n" +
		"\r\n" +
		"name\r\nJane Smith\r\n"

	attachments, err := extractCSVAttachments(readMessage(t, raw))
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "statement.csv", attachments[0].filename)
	assert.Contains(t, string(attachments[0].data), "Jane Smith")
}

func TestExtractCSVAttachmentsNested(t *testing.T) {
	csvBody := "name\nJane\n"
	raw := "From: bank@example.com\r\n" +
		"Content-Type: multipart/mixed; boundary=OUTER\r\n" +
		"\r\n" +
		"--OUTER\r\n" +
		"Content-Type: multipart/alternative; boundary=INNER\r\n" +
		"\r\n" +
		"--INNER\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--INNER\r\n" +
		"Content-Type: text/csv\r\n" +
		"Content-Disposition: attachment; filename=inner.csv\r\n" +
		"\r\n" +
		csvBody +
		"--INNER--\r\n" +
		"--OUTER--\r\n"

	attachments, err := extractCSVAttachments(readMessage(t, raw))
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "inner.csv", attachments[0].filename)
}

func TestExtractCSVAttachmentsNone(t *testing.T) {
	t.Run("plain text body", func(t *testing.T) {
		raw := "From: someone@example.com\r\n" +
			"Content-Type: text/plain\r\n" +
			"\r\n" +
			"no attachments here\r\n"

		attachments, err := extractCSVAttachments(readMessage(t, raw))
		require.NoError(t, err)
		assert.Empty(t, attachments)
	})

	t.Run("multipart without csv", func(t *testing.T) {
		raw := "From: someone@example.com\r\n" +
			"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
			"\r\n" +
			"--XYZ\r\n" +
			"Content-Type: application/pdf\r\n" +
			"Content-Disposition: attachment; filename=statement.pdf\r\n" +
			"\r\n" +
			"%PDF\r\n" +
			"--XYZ--\r\n"

		attachments, err := extractCSVAttachments(readMessage(t, raw))
		require.NoError(t, err)
		assert.Empty(t, attachments)
	})

	t.Run("no content type", func(t *testing.T) {
		raw := "From: someone@example.com\r\n" +
			"\r\n" +
			"bare body\r\n"

		attachments, err := extractCSVAttachments(readMessage(t, raw))
		require.NoError(t, err)
		assert.Empty(t, attachments)
	})
}

func TestExtractCSVAttachmentsQuotedPrintable(t *testing.T) {
	raw := "From: bank@example.com\r\n" +
		"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
		"\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/csv; name=export.csv\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"name\r\nM=C3=BCller\r\n" +
		"--XYZ--\r\n"

	attachments, err := extractCSVAttachments(readMessage(t, raw))
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Contains(t, string(attachments[0].data), "Müller")
}

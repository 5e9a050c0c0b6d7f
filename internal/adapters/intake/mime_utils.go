package intake

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"path/filepath"
	"strings"
)

const (
	maxAttachmentBytes = 16 << 20
	maxPartDepth       = 3
)

type csvAttachment struct {
	filename string
	data     []byte
}

// extractCSVAttachments pulls CSV attachments out of a statement mail.
// Attachments are recognized by media type or a .csv filename; a
// single-part message whose body is text/csv counts as one attachment.
func extractCSVAttachments(msg *mail.Message) ([]csvAttachment, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		return nil, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content type: %w", err)
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		if !isCSVMediaType(mediaType) {
			return nil, nil
		}
		data, err := decodeBody(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return nil, fmt.Errorf("failed to decode message body: %w", err)
		}
		return []csvAttachment{{filename: "statement.csv", data: data}}, nil
	}

	return collectCSVParts(multipart.NewReader(msg.Body, params["boundary"]), 0)
}

func collectCSVParts(mr *multipart.Reader, depth int) ([]csvAttachment, error) {
	var attachments []csvAttachment

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return attachments, fmt.Errorf("failed to read message part: %w", err)
		}

		mediaType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}

		if strings.HasPrefix(mediaType, "multipart/") {
			if depth >= maxPartDepth {
				continue
			}
			nested, err := collectCSVParts(multipart.NewReader(part, params["boundary"]), depth+1)
			if err != nil {
				return attachments, err
			}
			attachments = append(attachments, nested...)
			continue
		}

		filename := part.FileName()
		if !isCSVMediaType(mediaType) && !strings.EqualFold(filepath.Ext(filename), ".csv") {
			continue
		}

		data, err := decodeBody(part, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return attachments, fmt.Errorf("failed to decode attachment %q: %w", filename, err)
		}
		if filename == "" {
			filename = "statement.csv"
		}
		attachments = append(attachments, csvAttachment{filename: filename, data: data})
	}

	return attachments, nil
}

func isCSVMediaType(mediaType string) bool {
	switch mediaType {
	case "text/csv", "application/csv", "text/comma-separated-values":
		return true
	}
	return false
}

// decodeBody reverses the transfer encoding of a message part.
func decodeBody(r io.Reader, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}
	return io.ReadAll(io.LimitReader(r, maxAttachmentBytes))
}

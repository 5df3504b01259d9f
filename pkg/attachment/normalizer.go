package attachment

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

const (
	mimePDF       = "application/pdf"
	mimePlainText = "text/plain"
	mimeCSV       = "text/csv"
)

// textDocumentMIMEs are document types whose content is decoded as UTF-8 text
// and folded inline into the prompt. Everything else supported travels as an
// opaque binary part.
var textDocumentMIMEs = map[string]bool{
	mimePlainText:     true,
	mimeCSV:           true,
	"application/csv": true,
}

// Image normalizes a picked image file. Any image MIME type is accepted; the
// payload is kept as raw bytes and a data URL is derived for local preview.
func Image(name, mimeType string, data []byte) (*domain.Attachment, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %q is not an image type", domain.ErrUnsupportedFormat, mimeType)
	}

	return &domain.Attachment{
		Kind:        domain.AttachmentKindImage,
		MIMEType:    mimeType,
		Data:        data,
		DisplayName: name,
		PreviewURL:  DataURL(mimeType, data),
	}, nil
}

// Document normalizes a picked document file. PDFs stay binary with their
// MIME type preserved; CSV and plain text are decoded as UTF-8 text. Anything
// else is rejected.
func Document(name, mimeType string, data []byte) (*domain.Attachment, error) {
	mimeType = resolveDocumentMIME(name, mimeType)

	switch {
	case mimeType == mimePDF:
		return &domain.Attachment{
			Kind:        domain.AttachmentKindDocument,
			MIMEType:    mimePDF,
			Data:        data,
			DisplayName: name,
		}, nil
	case textDocumentMIMEs[mimeType]:
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: %q is not valid UTF-8 text", domain.ErrUnsupportedFormat, name)
		}
		return &domain.Attachment{
			Kind:        domain.AttachmentKindDocument,
			MIMEType:    mimeType,
			Text:        string(data),
			DisplayName: name,
		}, nil
	default:
		return nil, fmt.Errorf("%w: please upload a PDF, CSV, or text file", domain.ErrUnsupportedFormat)
	}
}

// resolveDocumentMIME fills in a missing or generic MIME type from the file
// extension, mirroring how browsers leave type empty for some files.
func resolveDocumentMIME(name, mimeType string) string {
	if mimeType != "" && mimeType != "application/octet-stream" {
		return mimeType
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return mimePDF
	case ".csv":
		return mimeCSV
	case ".txt":
		return mimePlainText
	}
	return mimeType
}

// DataURL encodes payload bytes as a self-describing data URL for local
// rendering.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

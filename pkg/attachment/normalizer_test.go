package attachment

import (
	"errors"
	"strings"
	"testing"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

func TestImage(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		wantErr  bool
	}{
		{"jpeg", "image/jpeg", false},
		{"png", "image/png", false},
		{"webp", "image/webp", false},
		{"pdf rejected", "application/pdf", true},
		{"empty mime rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Image("photo", tt.mimeType, []byte{0xFF, 0xD8})

			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Kind != domain.AttachmentKindImage {
				t.Errorf("kind = %q, want image", a.Kind)
			}
			if !strings.HasPrefix(a.PreviewURL, "data:"+tt.mimeType+";base64,") {
				t.Errorf("preview URL %q is not a data URL for %s", a.PreviewURL, tt.mimeType)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		data     []byte
		wantText bool
		wantMIME string
		wantErr  bool
	}{
		{"pdf by mime", "report", "application/pdf", []byte("%PDF-1.4"), false, "application/pdf", false},
		{"pdf by extension", "report.pdf", "", []byte("%PDF-1.4"), false, "application/pdf", false},
		{"csv by mime", "sales", "text/csv", []byte("item,amount\nsugar,4500"), true, "text/csv", false},
		{"csv by extension", "sales.csv", "", []byte("item,amount"), true, "text/csv", false},
		{"plain text", "notes.txt", "text/plain", []byte("restock friday"), true, "text/plain", false},
		{"txt by extension with generic mime", "notes.txt", "application/octet-stream", []byte("hello"), true, "text/plain", false},
		{"application/csv", "sales", "application/csv", []byte("a,b"), true, "application/csv", false},
		{"docx rejected", "report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte{1}, false, "", true},
		{"binary posing as csv rejected", "x.csv", "text/csv", []byte{0xFF, 0xFE, 0x01}, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Document(tt.fileName, tt.mimeType, tt.data)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if a.Kind != domain.AttachmentKindDocument {
				t.Errorf("kind = %q, want document", a.Kind)
			}
			if a.MIMEType != tt.wantMIME {
				t.Errorf("mime = %q, want %q", a.MIMEType, tt.wantMIME)
			}
			if tt.wantText {
				if !a.IsText() {
					t.Error("expected a text payload")
				}
				if a.Text != string(tt.data) {
					t.Errorf("text = %q, want raw content", a.Text)
				}
				if a.Data != nil {
					t.Error("text document should not carry binary data")
				}
			} else {
				if a.IsText() {
					t.Error("expected a binary payload")
				}
				if len(a.Data) == 0 {
					t.Error("binary document lost its payload")
				}
			}
			if a.DisplayName != tt.fileName {
				t.Errorf("display name = %q, want %q", a.DisplayName, tt.fileName)
			}
		})
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL("image/png", []byte{1, 2, 3})
	want := "data:image/png;base64,AQID"
	if got != want {
		t.Errorf("DataURL = %q, want %q", got, want)
	}
}

package domain

type AttachmentKind string

const (
	AttachmentKindImage    AttachmentKind = "image"
	AttachmentKindAudio    AttachmentKind = "audio"
	AttachmentKindDocument AttachmentKind = "document"
)

// Attachment is a single non-text payload staged for sending alongside a
// message. Exactly one of Data and Text is set: Text is used only for
// text-payload documents (CSV, plain text), which are folded inline into the
// prompt instead of being sent as a binary part.
type Attachment struct {
	Kind        AttachmentKind
	MIMEType    string
	Data        []byte
	Text        string
	DisplayName string

	// PreviewURL is a data URL for local rendering only. It is never sent
	// to the model.
	PreviewURL string
}

func (a *Attachment) IsText() bool {
	return a.Text != ""
}

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
)

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
)

var (
	ErrUnknownContentType = errors.New("unknown content item type")
	ErrInvalidContent     = errors.New("invalid content item")
)

// ContentItem is the capability contract shared by the closed variant set
// below. Consumers depend only on this interface, never on the concrete type.
type ContentItem interface {
	Type() ContentType
	Validate() error
	Render() string
	Record() map[string]any
	Preview() string
}

type TextItem struct {
	Content  string
	CSSClass string
}

func (t TextItem) Type() ContentType { return ContentText }

func (t TextItem) Validate() error {
	if strings.TrimSpace(t.Content) == "" {
		return fmt.Errorf("%w: text item requires content", ErrInvalidContent)
	}
	return nil
}

func (t TextItem) Render() string {
	class := "quiz-text"
	if t.CSSClass != "" {
		class = t.CSSClass
	}
	return fmt.Sprintf(`<div class=%q>%s</div>`, class, html.EscapeString(t.Content))
}

func (t TextItem) Record() map[string]any {
	rec := map[string]any{
		"type":    string(ContentText),
		"content": t.Content,
	}
	if t.CSSClass != "" {
		rec["css_class"] = t.CSSClass
	}
	return rec
}

func (t TextItem) Preview() string {
	const max = 50
	runes := []rune(t.Content)
	if len(runes) <= max {
		return t.Content
	}
	return string(runes[:max]) + "..."
}

type ImageItem struct {
	URL    string
	Alt    string
	Width  string
	Height string
}

func (i ImageItem) Type() ContentType { return ContentImage }

func (i ImageItem) Validate() error {
	if strings.TrimSpace(i.URL) == "" {
		return fmt.Errorf("%w: image item requires url", ErrInvalidContent)
	}
	return nil
}

func (i ImageItem) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<img src=%q alt=%q`, i.URL, i.Alt))
	if i.Width != "" {
		sb.WriteString(fmt.Sprintf(` width=%q`, i.Width))
	}
	if i.Height != "" {
		sb.WriteString(fmt.Sprintf(` height=%q`, i.Height))
	}
	sb.WriteString(`>`)
	return sb.String()
}

func (i ImageItem) Record() map[string]any {
	rec := map[string]any{
		"type": string(ContentImage),
		"url":  i.URL,
	}
	if i.Alt != "" {
		rec["alt"] = i.Alt
	}
	if i.Width != "" {
		rec["width"] = i.Width
	}
	if i.Height != "" {
		rec["height"] = i.Height
	}
	return rec
}

func (i ImageItem) Preview() string {
	return "[image] " + i.URL
}

type VideoItem struct {
	URL       string
	Thumbnail string
	Autoplay  bool
	Controls  bool
}

func (v VideoItem) Type() ContentType { return ContentVideo }

func (v VideoItem) Validate() error {
	if strings.TrimSpace(v.URL) == "" {
		return fmt.Errorf("%w: video item requires url", ErrInvalidContent)
	}
	return nil
}

func (v VideoItem) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<video src=%q`, v.URL))
	if v.Thumbnail != "" {
		sb.WriteString(fmt.Sprintf(` poster=%q`, v.Thumbnail))
	}
	if v.Autoplay {
		sb.WriteString(` autoplay`)
	}
	if v.Controls {
		sb.WriteString(` controls`)
	}
	sb.WriteString(`></video>`)
	return sb.String()
}

func (v VideoItem) Record() map[string]any {
	rec := map[string]any{
		"type":     string(ContentVideo),
		"url":      v.URL,
		"autoplay": v.Autoplay,
		"controls": v.Controls,
	}
	if v.Thumbnail != "" {
		rec["thumbnail"] = v.Thumbnail
	}
	return rec
}

func (v VideoItem) Preview() string {
	return "[video] " + v.URL
}

type AudioItem struct {
	URL      string
	Autoplay bool
	Controls bool
}

func (a AudioItem) Type() ContentType { return ContentAudio }

func (a AudioItem) Validate() error {
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("%w: audio item requires url", ErrInvalidContent)
	}
	return nil
}

func (a AudioItem) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<audio src=%q`, a.URL))
	if a.Autoplay {
		sb.WriteString(` autoplay`)
	}
	if a.Controls {
		sb.WriteString(` controls`)
	}
	sb.WriteString(`></audio>`)
	return sb.String()
}

func (a AudioItem) Record() map[string]any {
	return map[string]any{
		"type":     string(ContentAudio),
		"url":      a.URL,
		"autoplay": a.Autoplay,
		"controls": a.Controls,
	}
}

func (a AudioItem) Preview() string {
	return "[audio] " + a.URL
}

// contentEnvelope is the union of all wire fields; the type discriminant
// selects which ones matter.
type contentEnvelope struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	CSSClass  string `json:"css_class"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Width     string `json:"width"`
	Height    string `json:"height"`
	Thumbnail string `json:"thumbnail"`
	Autoplay  bool   `json:"autoplay"`
	Controls  *bool  `json:"controls"`
}

// DecodeContentItem decodes one tagged content item. The variant set is
// closed; decoding is exhaustive over the enumerated types.
func DecodeContentItem(raw json.RawMessage) (ContentItem, error) {
	var env contentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	// Media controls default to on, matching how players are usually embedded.
	controls := true
	if env.Controls != nil {
		controls = *env.Controls
	}

	var item ContentItem
	switch ContentType(env.Type) {
	case ContentText:
		item = TextItem{Content: env.Content, CSSClass: env.CSSClass}
	case ContentImage:
		item = ImageItem{URL: env.URL, Alt: env.Alt, Width: env.Width, Height: env.Height}
	case ContentVideo:
		item = VideoItem{URL: env.URL, Thumbnail: env.Thumbnail, Autoplay: env.Autoplay, Controls: controls}
	case ContentAudio:
		item = AudioItem{URL: env.URL, Autoplay: env.Autoplay, Controls: controls}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, env.Type)
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Package clipboard keeps a bounded, persisted history of what the user copied.
package clipboard

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// KindType discriminates clipboard payloads.
type KindType string

const (
	TypeText  KindType = "text"
	TypeImage KindType = "image"
	TypeFiles KindType = "files"
)

const displayLimit = 80

// Kind is the payload of a clipboard entry. Exactly the fields of its Type are set.
type Kind struct {
	Type      KindType
	Text      string
	ImageData []byte
	Width     int
	Height    int
	FilePaths []string
}

func TextKind(s string) Kind { return Kind{Type: TypeText, Text: s} }

func ImageKind(data []byte, width, height int) Kind {
	return Kind{Type: TypeImage, ImageData: data, Width: width, Height: height}
}

func FilesKind(paths []string) Kind { return Kind{Type: TypeFiles, FilePaths: paths} }

// Equal compares payloads. Identity and timestamp play no part in it.
func (k Kind) Equal(o Kind) bool {
	if k.Type != o.Type {
		return false
	}
	switch k.Type {
	case TypeText:
		return k.Text == o.Text
	case TypeImage:
		return k.Width == o.Width && k.Height == o.Height && string(k.ImageData) == string(o.ImageData)
	case TypeFiles:
		if len(k.FilePaths) != len(o.FilePaths) {
			return false
		}
		for i := range k.FilePaths {
			if k.FilePaths[i] != o.FilePaths[i] {
				return false
			}
		}
		return true
	}
	return false
}

// ApproxSize is the byte cost of the payload counted against the history budget.
func (k Kind) ApproxSize() int64 {
	switch k.Type {
	case TypeText:
		return int64(len(k.Text))
	case TypeImage:
		return int64(len(k.ImageData))
	case TypeFiles:
		var n int64
		for _, p := range k.FilePaths {
			n += int64(len(p))
		}
		return n
	}
	return 0
}

// DisplayText is the one-line label of the payload.
func (k Kind) DisplayText() string {
	switch k.Type {
	case TypeText:
		s := strings.Join(strings.Fields(k.Text), " ")
		if utf8.RuneCountInString(s) > displayLimit {
			r := []rune(s)
			s = string(r[:displayLimit]) + "…"
		}
		return s
	case TypeImage:
		return fmt.Sprintf("Image %d×%d", k.Width, k.Height)
	case TypeFiles:
		if len(k.FilePaths) == 0 {
			return "Files"
		}
		name := filepath.Base(k.FilePaths[0])
		if len(k.FilePaths) == 1 {
			return name
		}
		return fmt.Sprintf("%s +%d more", name, len(k.FilePaths)-1)
	}
	return ""
}

type kindJSON struct {
	Type      KindType `json:"type"`
	Text      *string  `json:"text,omitempty"`
	ImageData []byte   `json:"imageData,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	FilePaths []string `json:"filePaths,omitempty"`
}

func (k Kind) MarshalJSON() ([]byte, error) {
	out := kindJSON{Type: k.Type}
	switch k.Type {
	case TypeText:
		out.Text = &k.Text
	case TypeImage:
		w, h := float64(k.Width), float64(k.Height)
		out.ImageData = k.ImageData
		out.Width, out.Height = &w, &h
	case TypeFiles:
		out.FilePaths = k.FilePaths
		if out.FilePaths == nil {
			out.FilePaths = []string{}
		}
	default:
		return nil, fmt.Errorf("unknown clipboard kind %q", k.Type)
	}
	return json.Marshal(out)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var in kindJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Type {
	case TypeText:
		if in.Text == nil {
			return fmt.Errorf("text entry without text")
		}
		*k = TextKind(*in.Text)
	case TypeImage:
		var w, h int
		if in.Width != nil {
			w = int(*in.Width)
		}
		if in.Height != nil {
			h = int(*in.Height)
		}
		*k = ImageKind(in.ImageData, w, h)
	case TypeFiles:
		*k = FilesKind(in.FilePaths)
	default:
		return fmt.Errorf("unknown clipboard kind %q", in.Type)
	}
	return nil
}

// Entry is one captured clipboard payload.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Kind      Kind
}

func NewEntry(kind Kind, at time.Time) Entry {
	return Entry{ID: uuid.New(), Timestamp: at, Kind: kind}
}

type entryJSON struct {
	ID        uuid.UUID `json:"id"`
	Timestamp string    `json:"timestamp"`
	Kind      Kind      `json:"kind"`
}

// MarshalJSON writes the timestamp as ISO-8601 with second precision.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:        e.ID,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Kind:      e.Kind,
	})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ts, err := time.Parse(time.RFC3339, in.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", in.Timestamp, err)
	}
	e.ID = in.ID
	e.Timestamp = ts
	e.Kind = in.Kind
	return nil
}

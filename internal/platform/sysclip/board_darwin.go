//go:build darwin

package sysclip

import (
	"context"
	"net/url"
	"sync"

	"github.com/progrium/darwinkit/macos/appkit"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

const (
	typeText    = appkit.PasteboardType("public.utf8-plain-text")
	typePNG     = appkit.PasteboardType("public.png")
	typeTIFF    = appkit.PasteboardType("public.tiff")
	typeFileURL = appkit.PasteboardType("public.file-url")
)

// Board reads and writes the general pasteboard.
type Board struct {
	mu  sync.Mutex
	pb  appkit.Pasteboard
	log logger.Logger
}

func New(_ context.Context, log logger.Logger) (*Board, error) {
	return &Board{pb: appkit.Pasteboard_GeneralPasteboard(), log: log}, nil
}

func (b *Board) ChangeCount() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(b.pb.ChangeCount())
}

func (b *Board) ReadFiles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var paths []string
	for _, item := range b.pb.PasteboardItems() {
		raw := item.StringForType(typeFileURL)
		if raw == "" {
			continue
		}
		if p := fileURLPath(raw); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (b *Board) ReadImage() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if data := b.pb.DataForType(typePNG); len(data) > 0 {
		return data
	}
	return b.pb.DataForType(typeTIFF)
}

func (b *Board) ReadText() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.pb.StringForType(typeText)
	return s, s != ""
}

func (b *Board) WriteText(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pb.ClearContents()
	b.pb.SetStringForType(s, typeText)
	return nil
}

func (b *Board) WriteImage(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pb.ClearContents()
	b.pb.SetDataForType(data, typeTIFF)
	b.pb.SetDataForType(data, typePNG)
	return nil
}

// WriteFiles puts the first path on the pasteboard as a file URL; the rest are
// only carried in the plain-text fallback.
func (b *Board) WriteFiles(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pb.ClearContents()
	u := url.URL{Scheme: "file", Path: paths[0]}
	b.pb.SetStringForType(u.String(), typeFileURL)
	b.pb.SetStringForType(joinLines(paths), typeText)
	return nil
}

func fileURLPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return u.Path
}

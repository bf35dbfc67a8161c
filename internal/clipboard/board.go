package clipboard

import "sync"

// Board is the system clipboard as the poller sees it. ChangeCount increases on
// every write, whoever made it.
type Board interface {
	ChangeCount() int64
	ReadFiles() []string
	ReadImage() []byte
	ReadText() (string, bool)

	WriteText(s string) error
	WriteImage(data []byte) error
	WriteFiles(paths []string) error
}

// Keystroker sends the paste shortcut to the frontmost application.
type Keystroker interface {
	Paste() error
}

// MemoryBoard is an in-process Board. Set* simulate a copy made by another application.
type MemoryBoard struct {
	mu      sync.Mutex
	count   int64
	files   []string
	image   []byte
	text    string
	hasText bool
}

func NewMemoryBoard() *MemoryBoard { return &MemoryBoard{} }

func (b *MemoryBoard) ChangeCount() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *MemoryBoard) ReadFiles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.files...)
}

func (b *MemoryBoard) ReadImage() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.image...)
}

func (b *MemoryBoard) ReadText() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, b.hasText
}

func (b *MemoryBoard) WriteText(s string) error {
	b.replace(func() { b.text, b.hasText = s, true })
	return nil
}

func (b *MemoryBoard) WriteImage(data []byte) error {
	b.replace(func() { b.image = append([]byte(nil), data...) })
	return nil
}

func (b *MemoryBoard) WriteFiles(paths []string) error {
	b.replace(func() { b.files = append([]string(nil), paths...) })
	return nil
}

// SetText, SetImage and SetFiles are the external-copy counterparts of the writers.
func (b *MemoryBoard) SetText(s string)        { _ = b.WriteText(s) }
func (b *MemoryBoard) SetImage(data []byte)    { _ = b.WriteImage(data) }
func (b *MemoryBoard) SetFiles(paths []string) { _ = b.WriteFiles(paths) }

// replace clears the board, applies set and bumps the change count.
func (b *MemoryBoard) replace(set func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files, b.image, b.text, b.hasText = nil, nil, "", false
	set()
	b.count++
}

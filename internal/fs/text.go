package fs

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

// ErrBinaryContent is returned by OpenText when a file does not look like text.
var ErrBinaryContent = errors.New("binary content")

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z":    {},
	".apk":   {},
	".avi":   {},
	".bin":   {},
	".bmp":   {},
	".bz2":   {},
	".class": {},
	".dll":   {},
	".docx":  {},
	".dylib": {},
	".exe":   {},
	".flac":  {},
	".gif":   {},
	".gz":    {},
	".ico":   {},
	".iso":   {},
	".jar":   {},
	".jpeg":  {},
	".jpg":   {},
	".mkv":   {},
	".mov":   {},
	".mp3":   {},
	".mp4":   {},
	".ogg":   {},
	".pdf":   {},
	".png":   {},
	".so":    {},
	".tar":   {},
	".tgz":   {},
	".wasm":  {},
	".woff":  {},
	".woff2": {},
	".xlsx":  {},
	".xz":    {},
	".zip":   {},
}

// IsTextFile determines if content is text or binary.
// The path (if provided) is used to short-circuit obvious binary extensions before sniffing.
func IsTextFile(path string, content []byte) bool {
	if looksBinaryByExtension(path) {
		return false
	}

	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}

	if enc := detectUnicodeEncoding(sample); enc != encodingUnknown {
		return true
	}

	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	if printable == 0 {
		return false
	}

	return (len(sample)-printable)*100/len(sample) < nonPrintableThresholdPercent
}

// TextFile is an open text file whose reader yields UTF-8 with any BOM removed.
type TextFile struct {
	io.Reader
	file *os.File
}

// Close releases the underlying file.
func (t *TextFile) Close() error {
	return t.file.Close()
}

// OpenText opens path for line-oriented reading. Files that sniff as binary
// return ErrBinaryContent. UTF-16 files carrying a BOM are transcoded to UTF-8.
func OpenText(path string) (*TextFile, error) {
	if looksBinaryByExtension(path) {
		return nil, ErrBinaryContent
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	buffered := bufio.NewReaderSize(f, textDetectionSampleSize)
	sample, err := buffered.Peek(textDetectionSampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		_ = f.Close()
		return nil, err
	}
	if !IsTextFile("", sample) {
		_ = f.Close()
		return nil, ErrBinaryContent
	}

	var reader io.Reader = buffered
	if detectUnicodeEncoding(sample) != encodingUnknown {
		reader = transform.NewReader(buffered, unicode.BOMOverride(transform.Nop))
	}
	return &TextFile{Reader: reader, file: f}, nil
}

func looksBinaryByExtension(path string) bool {
	if path == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

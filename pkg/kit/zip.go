package kit

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/brandmark/pkg/errors"
)

// File is one archive entry.
type File struct {
	Name string
	Data []byte
}

// archiveTime is stamped on every entry so archives are reproducible.
var archiveTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Pack writes files into a zip archive in the given order. Names must be
// relative paths; duplicates are rejected.
func Pack(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if err := errors.ValidatePath(f.Name); err != nil {
			return nil, fmt.Errorf("pack %q: %w", f.Name, err)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("pack: duplicate entry %q", f.Name)
		}
		seen[f.Name] = true

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("pack %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack reads every entry of a zip archive.
func Unpack(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}
	files := make([]File, 0, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", zf.Name, err)
		}
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", zf.Name, err)
		}
		files = append(files, File{Name: zf.Name, Data: b.Bytes()})
	}
	return files, nil
}

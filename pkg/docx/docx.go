package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

const documentPath = "word/document.xml"

// Document is an in-memory DOCX package. The word/document.xml part is kept
// separately so cell operations can edit it without re-reading the archive.
type Document struct {
	names []string          // archive entry order, preserved on save
	files map[string][]byte // entry name -> raw bytes
	body  []byte            // current contents of word/document.xml
	picID int               // next drawing object id
}

// Open reads a DOCX file from disk.
func Open(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read docx: %w", err)
	}
	return OpenBytes(raw)
}

// OpenBytes reads a DOCX package from memory.
func OpenBytes(raw []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}

	d := &Document{
		files: make(map[string][]byte, len(zr.File)),
		picID: 1,
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", f.Name, err)
		}
		d.names = append(d.names, f.Name)
		d.files[f.Name] = data
	}

	body, ok := d.files[documentPath]
	if !ok {
		return nil, fmt.Errorf("not a docx package: missing %s", documentPath)
	}
	d.body = body
	return d, nil
}

// Save writes the package to disk.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}

// Bytes serializes the package.
func (d *Document) Bytes() ([]byte, error) {
	d.files[documentPath] = d.body

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(d.files[name]); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// addFile registers a new archive entry.
func (d *Document) addFile(name string, data []byte) {
	if _, exists := d.files[name]; !exists {
		d.names = append(d.names, name)
	}
	d.files[name] = data
}

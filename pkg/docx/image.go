package docx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	relsPath         = "word/_rels/document.xml.rels"
	contentTypesPath = "[Content_Types].xml"

	emuPerCm = 360000

	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	emptyRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
)

var ridPattern = regexp.MustCompile(`Id="rId(\d+)"`)

// AddImage appends a centered picture paragraph to the cell. Size is given
// in centimeters. Supported formats: jpeg and png.
func (c *Cell) AddImage(path string, widthCm, heightCm float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	contentType, ok := imageContentType(ext)
	if !ok {
		return fmt.Errorf("unsupported image format: %q", ext)
	}

	mediaName := c.d.freeMediaName(ext)
	c.d.addFile("word/media/"+mediaName, data)
	c.d.ensureContentType(ext, contentType)
	rid := c.d.addImageRel(mediaName)

	cx := int64(widthCm * emuPerCm)
	cy := int64(heightCm * emuPerCm)
	id := c.d.picID
	c.d.picID++

	var p strings.Builder
	fmt.Fprintf(&p, `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing>`)
	fmt.Fprintf(&p, `<wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" distT="0" distB="0" distL="0" distR="0">`)
	fmt.Fprintf(&p, `<wp:extent cx="%d" cy="%d"/>`, cx, cy)
	fmt.Fprintf(&p, `<wp:docPr id="%d" name="Picture %d"/>`, id, id)
	fmt.Fprintf(&p, `<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`)
	fmt.Fprintf(&p, `<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	fmt.Fprintf(&p, `<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	fmt.Fprintf(&p, `<pic:nvPicPr><pic:cNvPr id="%d" name="Picture %d"/><pic:cNvPicPr/></pic:nvPicPr>`, id, id)
	fmt.Fprintf(&p, `<pic:blipFill><a:blip xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`, rid)
	fmt.Fprintf(&p, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, cx, cy)
	fmt.Fprintf(&p, `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	fmt.Fprintf(&p, `</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)

	c.appendInner(p.String())
	return nil
}

func imageContentType(ext string) (string, bool) {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg", true
	case "png":
		return "image/png", true
	default:
		return "", false
	}
}

// freeMediaName picks a media file name not already present in the package.
func (d *Document) freeMediaName(ext string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("image%d.%s", i, ext)
		if _, exists := d.files["word/media/"+name]; !exists {
			return name
		}
	}
}

// ensureContentType registers a Default content type for the extension.
func (d *Document) ensureContentType(ext, contentType string) {
	ct, ok := d.files[contentTypesPath]
	if !ok {
		return
	}
	needle := fmt.Sprintf(`Extension="%s"`, ext)
	if bytes.Contains(ct, []byte(needle)) {
		return
	}
	entry := fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, ext, contentType)
	tagEnd := bytes.IndexByte(ct, '>')
	for tagEnd != -1 {
		// skip the xml declaration, insert right after the <Types ...> tag
		if bytes.Contains(ct[:tagEnd], []byte("<Types")) {
			break
		}
		next := bytes.IndexByte(ct[tagEnd+1:], '>')
		if next == -1 {
			return
		}
		tagEnd += next + 1
	}
	if tagEnd == -1 {
		return
	}
	updated := make([]byte, 0, len(ct)+len(entry))
	updated = append(updated, ct[:tagEnd+1]...)
	updated = append(updated, entry...)
	updated = append(updated, ct[tagEnd+1:]...)
	d.files[contentTypesPath] = updated
}

// addImageRel registers a relationship for the media file and returns its id.
func (d *Document) addImageRel(mediaName string) string {
	rels, ok := d.files[relsPath]
	if !ok {
		rels = []byte(emptyRels)
		d.addFile(relsPath, rels)
	}

	maxID := 0
	for _, m := range ridPattern.FindAllSubmatch(rels, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > maxID {
			maxID = n
		}
	}
	rid := fmt.Sprintf("rId%d", maxID+1)

	entry := fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="media/%s"/>`, rid, imageRelType, mediaName)
	closing := bytes.LastIndex(rels, []byte("</Relationships>"))
	if closing == -1 {
		return rid
	}
	updated := make([]byte, 0, len(rels)+len(entry))
	updated = append(updated, rels[:closing]...)
	updated = append(updated, entry...)
	updated = append(updated, rels[closing:]...)
	d.files[relsPath] = updated
	return rid
}

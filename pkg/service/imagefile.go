package service

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/perchapp/cli/pkg/errors"
)

// ImageFile is a locally selected file staged for upload. The content type
// and size are declared up front so validation can run before any bytes are
// read; the actual read happens once, at encode time, and may fail.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64

	open func() (io.ReadCloser, error)
}

// NewImageFile creates an ImageFile from an explicit open function
func NewImageFile(name, contentType string, size int64, open func() (io.ReadCloser, error)) *ImageFile {
	return &ImageFile{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		open:        open,
	}
}

// ImageFileFromPath stats a local file and builds an ImageFile from it.
// The content type comes from the file extension, falling back to sniffing
// the first bytes when the extension is unknown.
func ImageFileFromPath(path string) (*ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FileNotFoundError(path)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = sniffContentType(path)
	}
	// Strip any charset parameter; only the media type matters here
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return &ImageFile{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func sniffContentType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "application/octet-stream"
	}
	return http.DetectContentType(buf[:n])
}

// IsImage reports whether the declared content type indicates an image
func (f *ImageFile) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// EncodeDataURI reads the file to completion and encodes it as a base64
// data URI suitable for a JSON request payload.
func (f *ImageFile) EncodeDataURI() (string, error) {
	if f.open == nil {
		return "", errors.ReadError(nil)
	}

	r, err := f.open()
	if err != nil {
		return "", errors.ReadError(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.ReadError(err)
	}

	var b bytes.Buffer
	b.WriteString("data:")
	b.WriteString(f.ContentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}

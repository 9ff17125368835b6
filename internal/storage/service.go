package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// maxImageWidth caps stored post images; larger uploads are downscaled.
const maxImageWidth = 1080

type Service struct {
	mediaDir string
}

func NewService(mediaDir string) *Service {
	return &Service{mediaDir: mediaDir}
}

// SaveImage decodes an uploaded image, downscales anything wider than
// maxImageWidth and writes it under the media dir. The returned path is
// relative to the media root and is what gets stored on the post.
func (s *Service) SaveImage(fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	mime := fh.Header.Get("Content-Type")
	img, err := decodeImage(mime, file)
	if err != nil {
		return "", err
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := encodeImage(mime, &buf, img); err != nil {
		return "", err
	}

	name := filepath.Join("posts", uuid.NewString()+extFor(mime))
	full := filepath.Join(s.mediaDir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func decodeImage(mime string, r io.Reader) (image.Image, error) {
	switch mime {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	}
	return nil, fmt.Errorf("unsupported image type %q", mime)
}

func encodeImage(mime string, w io.Writer, img image.Image) error {
	switch mime {
	case "image/jpeg":
		return jpeg.Encode(w, img, nil)
	case "image/png":
		return png.Encode(w, img)
	case "image/gif":
		return gif.Encode(w, img, nil)
	}
	return fmt.Errorf("unsupported image type %q", mime)
}

func extFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	}
	return ""
}

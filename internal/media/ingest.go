// AngelaMos | 2026
// ingest.go

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/househunt/go-backend/internal/config"
	"github.com/househunt/go-backend/internal/core"
)

var (
	ErrUnsupportedType = errors.New("only .jpg, .jpeg & .png allowed")
	ErrTooLarge        = errors.New("image exceeds size limit")
)

var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedMIME = []string{"image/jpeg", "image/png"}

type Upload struct {
	Filename string
	Content  io.Reader
}

// Ingestor validates uploaded images and writes a normalized copy to the
// upload directory under a fresh UUID name.
type Ingestor struct {
	dir         string
	urlPrefix   string
	maxBytes    int64
	maxWidth    int
	jpegQuality int
	newID       func() string
}

func NewIngestor(cfg config.UploadConfig) (*Ingestor, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	return &Ingestor{
		dir:         cfg.Dir,
		urlPrefix:   cfg.URLPrefix,
		maxBytes:    cfg.MaxBytes,
		maxWidth:    cfg.MaxWidth,
		jpegQuality: quality,
		newID:       uuid.NewString,
	}, nil
}

func (i *Ingestor) MaxBytes() int64 {
	return i.maxBytes
}

// Ingest returns the public URL of the stored image. When the image cannot
// be decoded or re-encoded the original bytes are kept instead.
func (i *Ingestor) Ingest(ctx context.Context, up Upload) (string, error) {
	ctx, end := core.StartSpan(ctx, "media.Ingest",
		attribute.String("upload.filename", up.Filename),
	)
	url, err := i.ingest(ctx, up)
	end(err)
	return url, err
}

func (i *Ingestor) ingest(ctx context.Context, up Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(up.Content, i.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > i.maxBytes {
		return "", ErrTooLarge
	}

	if !mimetype.EqualsAny(mimetype.Detect(data).String(), allowedMIME...) {
		return "", ErrUnsupportedType
	}

	id := i.newID()

	name, err := i.storeOptimized(id, data)
	if err != nil {
		slog.WarnContext(ctx, "image optimization failed, keeping original",
			"filename", up.Filename,
			"error", err,
		)
		core.AddSpanEvent(ctx, "media.keep_original",
			attribute.String("error", err.Error()),
		)
		name = id + ext
		if err := i.writeFile(name, func(w io.Writer) error {
			_, werr := w.Write(data)
			return werr
		}); err != nil {
			return "", fmt.Errorf("store original image: %w", err)
		}
	}

	return path.Join(i.urlPrefix, name), nil
}

// Remove deletes a file previously returned by Ingest. URLs outside the
// upload prefix are ignored, as are files that are already gone.
func (i *Ingestor) Remove(url string) error {
	name, ok := strings.CutPrefix(url, strings.TrimSuffix(i.urlPrefix, "/")+"/")
	if !ok || name == "" || name != path.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(i.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func (i *Ingestor) storeOptimized(id string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = i.fit(img)

	name := id + ".jpg"
	err = i.writeFile(name, func(w io.Writer) error {
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(i.jpegQuality))
	})
	if err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return name, nil
}

func (i *Ingestor) fit(img image.Image) image.Image {
	if i.maxWidth <= 0 || img.Bounds().Dx() <= i.maxWidth {
		return img
	}
	return imaging.Resize(img, i.maxWidth, 0, imaging.Lanczos)
}

// writeFile writes through a temp file so readers never see a partial image.
func (i *Ingestor) writeFile(name string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(i.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()        //nolint:errcheck // already failing
		_ = os.Remove(tmpName) //nolint:errcheck // already failing
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // already failing
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(i.dir, name)); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // already failing
		return fmt.Errorf("rename upload: %w", err)
	}

	return nil
}

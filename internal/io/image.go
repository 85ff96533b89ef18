package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration, YouTube serves some thumbnails as WebP
)

// ImageService prepares video thumbnails for embedding as cover art.
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, _ := client.DownloadBytes(ctx, info.ThumbnailURL)
//	cover, err := svc.PrepareCoverArt(ctx, thumb, 500)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// PrepareCoverArt decodes data (JPEG, PNG or WebP), center-crops it to a
// square, scales it down to at most maxSize pixels per side and returns
// JPEG bytes.
//
// YouTube thumbnails are 16:9 with letterboxing around square album art,
// so the crop keeps the useful part. A maxSize of zero or less disables
// scaling.
func (s *ImageService) PrepareCoverArt(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	square := cropSquare(img.Bounds())
	side := square.Dx()
	if maxSize > 0 && side > maxSize {
		side = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, side, side))

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, square, draw.Over, nil)

	return s.encode(dst)
}

// ConvertToJPEG converts an image to JPEG format without resizing.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.encode(img)
}

func (s *ImageService) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cropSquare returns the largest centered square inside b.
func cropSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == h {
		return b
	}
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}

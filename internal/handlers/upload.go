package handlers

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
)

const maxUploadSize = 10 << 20 // 10MB

// Photo describes a stored dish photo.
type Photo struct {
	Filename  string
	Size      int64
	MediaType string
}

// MediaStore saves uploaded dish photos under a single directory, served
// back at /media/{filename}.
type MediaStore struct {
	Dir string
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &MediaStore{Dir: dir}, nil
}

// SavePhoto reads the dish_photo field of a multipart request, re-encodes
// it as a width-bounded JPEG and stores it under a random filename.
// Returns (nil, nil) when the field is absent so callers can decide
// whether the photo is required.
func (m *MediaStore) SavePhoto(r *http.Request) (*Photo, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errs.Validation("file too large, max 10MB")
	}

	file, header, err := r.FormFile("dish_photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errs.Validation("invalid dish_photo upload")
	}
	defer file.Close()

	img, err := decodeImage(file, header.Filename)
	if err != nil {
		return nil, err
	}

	// Resize to max width 800px, preserving aspect ratio.
	scaled := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := uuid.New().String() + ".jpg"
	path := filepath.Join(m.Dir, filename)
	out, err := os.Create(path)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		os.Remove(path)
		return nil, errs.Persistence(err)
	}

	info, err := out.Stat()
	if err != nil {
		return nil, errs.Persistence(err)
	}

	return &Photo{
		Filename:  filename,
		Size:      info.Size(),
		MediaType: "image/jpeg",
	}, nil
}

func decodeImage(file multipart.File, name string) (image.Image, error) {
	var img image.Image
	var err error
	switch ext := filepath.Ext(name); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return nil, errs.Validation("unsupported image format, only PNG, JPG, JPEG allowed")
	}
	if err != nil {
		return nil, errs.Validation("failed to decode image")
	}
	return img, nil
}

// Package storage saves uploaded images to local disk under randomized
// names and hands back the public /uploads path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 5 << 20 // 5MB

var ErrFileTooLarge = errors.New("file exceeds 5MB limit")
var ErrBadFileType = errors.New("invalid file type, only JPEG, PNG and WEBP are allowed")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Uploads struct {
	dir string
}

// New creates the upload directory if needed.
func New(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Uploads{dir: dir}, nil
}

// Dir is the on-disk directory served back at /uploads.
func (u *Uploads) Dir() string { return u.dir }

// Validate checks size and extension without touching disk.
func (u *Uploads) Validate(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return ErrBadFileType
	}
	return nil
}

// Save writes the upload under a random name with the given prefix and
// returns its public path. Random names mean concurrent uploads cannot
// collide.
func (u *Uploads) Save(file *multipart.FileHeader, prefix string) (string, error) {
	if err := u.Validate(file); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

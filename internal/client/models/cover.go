package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MaxCoverSize is the largest accepted cover image, before encoding.
const MaxCoverSize = 5 * 1024 * 1024

const coverDataPrefix = "data:image/jpeg;base64,"

var (
	ErrCoverExtension = errors.New("only .jpg/.jpeg images are allowed")
	ErrCoverType      = errors.New("only JPEG images are allowed")
	ErrCoverTooLarge  = errors.New("image size should be less than 5MB")
	ErrCoverURL       = errors.New("cover must be a JPEG data URI or an http(s) URL")
)

func coverError(err error) error {
	return &ValidationError{Fields: map[string]string{"coverUrl": err.Error()}}
}

// EncodeCover turns the raw bytes of a cover image into the data URI stored
// in Book.CoverURL. name is only used for its extension.
func EncodeCover(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
	default:
		return "", coverError(ErrCoverExtension)
	}
	if len(data) > MaxCoverSize {
		return "", coverError(ErrCoverTooLarge)
	}
	if http.DetectContentType(data) != "image/jpeg" {
		return "", coverError(ErrCoverType)
	}
	return coverDataPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// LoadCover reads and encodes the cover image at path. The size limit is
// checked before the file is read.
func LoadCover(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open cover: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat cover: %w", err)
	}
	if st.Size() > MaxCoverSize {
		return "", coverError(ErrCoverTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxCoverSize+1))
	if err != nil {
		return "", fmt.Errorf("read cover: %w", err)
	}
	return EncodeCover(path, data)
}

// DecodeCover returns the image bytes of a data URI cover.
func DecodeCover(cover string) ([]byte, error) {
	payload, ok := strings.CutPrefix(cover, coverDataPrefix)
	if !ok {
		return nil, ErrCoverURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return data, nil
}

// CheckCoverURL accepts the values a Book.CoverURL may hold: nothing, an
// embedded JPEG within the size limit, or a remote http(s) URL.
func CheckCoverURL(cover string) error {
	if cover == "" {
		return nil
	}

	if strings.HasPrefix(cover, "data:") {
		data, err := DecodeCover(cover)
		if err != nil {
			return ErrCoverURL
		}
		if len(data) > MaxCoverSize {
			return ErrCoverTooLarge
		}
		if http.DetectContentType(data) != "image/jpeg" {
			return ErrCoverType
		}
		return nil
	}

	u, err := url.Parse(cover)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrCoverURL
	}
	return nil
}

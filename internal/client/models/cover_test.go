package models

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/stretchr/testify/require"
)

// jpegHeader is enough for content sniffing to report image/jpeg.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestEncodeCover_OK(t *testing.T) {
	uri, err := EncodeCover("cover.JPG", jpegHeader)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	data, err := DecodeCover(uri)
	require.NoError(t, err)
	require.Equal(t, jpegHeader, data)
	require.NoError(t, CheckCoverURL(uri))
}

func TestEncodeCover_Rejections(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want error
	}{
		{"png extension", "cover.png", jpegHeader, ErrCoverExtension},
		{"no extension", "cover", jpegHeader, ErrCoverExtension},
		{"not jpeg content", "cover.jpeg", []byte("\x89PNG\r\n\x1a\n0000"), ErrCoverType},
		{"too large", "cover.jpg", append(bytes.Clone(jpegHeader), make([]byte, MaxCoverSize)...), ErrCoverTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeCover(tt.file, tt.data)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.want.Error(), ve.Fields["coverUrl"])
		})
	}
}

func TestLoadCover(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "ok.jpeg")
	require.NoError(t, os.WriteFile(ok, jpegHeader, 0o600))
	uri, err := LoadCover(ok)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, coverDataPrefix))

	big := filepath.Join(dir, "big.jpg")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxCoverSize+1), 0o600))
	_, err = LoadCover(big)
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = LoadCover(filepath.Join(dir, "missing.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckCoverURL(t *testing.T) {
	require.NoError(t, CheckCoverURL(""))
	require.NoError(t, CheckCoverURL("https://example.com/c.jpg"))
	require.NoError(t, CheckCoverURL("http://example.com/c.jpg"))

	require.ErrorIs(t, CheckCoverURL("data:image/png;base64,AAAA"), ErrCoverURL)
	require.ErrorIs(t, CheckCoverURL("data:image/jpeg;base64,!!!"), ErrCoverURL)
	require.ErrorIs(t, CheckCoverURL("/relative/path.jpg"), ErrCoverURL)
	require.ErrorIs(t, CheckCoverURL("https://"), ErrCoverURL)

	jpeg, err := EncodeCover("c.jpg", jpegHeader)
	require.NoError(t, err)
	require.NoError(t, CheckCoverURL(jpeg))
}

func TestCheckCoverURL_SniffsEmbeddedContent(t *testing.T) {
	png := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n0000"))
	require.ErrorIs(t, CheckCoverURL(png), ErrCoverType)

	d := Draft{Title: "T", Author: "A", Genre: "G", Description: "D", CoverURL: png}
	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	require.Contains(t, ve.Fields, "coverUrl")
}

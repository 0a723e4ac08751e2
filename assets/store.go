// Package assets uploads election thumbnails and candidate images to an
// external object store and removes them again.
package assets

import (
	"context"
	"errors"
	"io"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var ErrAssetNotFound = errors.New("asset not found")

// Asset is a stored object. ID is what Delete expects.
type Asset struct {
	URL string
	ID  string
}

type Store interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (*Asset, error)
	Delete(ctx context.Context, assetID string) error
}

// objectKey builds "<folder>/<random>_<filename>" with spaces in the
// filename replaced by underscores.
func objectKey(folder, filename string) (string, error) {
	prefix, err := gonanoid.Generate(keyAlphabet, 12)
	if err != nil {
		return "", err
	}
	name := strings.Join(strings.Fields(filename), "_")
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" {
		name = "upload"
	}
	return folder + "/" + prefix + "_" + name, nil
}

// Package storage holds the image store capability: put bytes somewhere,
// delete them later, and turn a stored path into a client-facing URL. The
// core never touches the filesystem or bucket directly.
package storage

import (
	"bytes"
	"errors"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrNotImage marks an upload whose bytes do not decode as a known image
// format.
var ErrNotImage = errors.New("not a decodable image")

// ImageStore abstracts where recipe images live.
type ImageStore interface {
	// Store writes the content and returns the storage path it was filed
	// under. ext includes the leading dot.
	Store(ext string, content io.Reader) (string, error)
	// Delete releases a previously stored image. Deleting an unknown path is
	// not an error.
	Delete(path string) error
	// URL maps a storage path to the URL clients fetch it from.
	URL(path string) string
}

var formatExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

// SniffImage validates that data decodes as jpeg, png or gif and returns
// the canonical file extension for the detected format.
func SniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}
	ext, ok := formatExtensions[format]
	if !ok {
		return "", ErrNotImage
	}
	return ext, nil
}

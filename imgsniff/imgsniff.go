// Package imgsniff validates imported raster bytes before they become
// a scene.KindImage entity. Grounded on the import-time validation
// step spec.md leaves implicit in "imported raster/vector images",
// using github.com/h2non/filetype for signature-based MIME detection
// rather than trusting a file extension.
package imgsniff

import (
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"tileloom.dev/tileloom/tileerr"
)

// Supported is the set of raster formats the image entity kind
// accepts.
var Supported = map[string]bool{
	matchers.TypePng.MIME.Value:  true,
	matchers.TypeJpeg.MIME.Value: true,
	matchers.TypeGif.MIME.Value:  true,
	matchers.TypeWebp.MIME.Value: true,
	matchers.TypeBmp.MIME.Value:  true,
}

// Sniff identifies the MIME type of data's byte signature. It fails
// with tileerr.MalformedInput if the signature is unrecognized or not
// one of the supported raster formats.
func Sniff(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", fmt.Errorf("imgsniff: unrecognized image signature: %w", tileerr.MalformedInput)
	}
	if !Supported[kind.MIME.Value] {
		return "", fmt.Errorf("imgsniff: unsupported image format %q: %w", kind.MIME.Value, tileerr.MalformedInput)
	}
	return kind.MIME.Value, nil
}

// IsSupported reports whether data's signature matches a supported
// raster format, without returning an error.
func IsSupported(data []byte) bool {
	_, err := Sniff(data)
	return err == nil
}

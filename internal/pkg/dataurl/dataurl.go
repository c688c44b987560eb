// Package dataurl decodes base64 image data URLs of the shape
// `data:image/<subtype>;base64,<payload>`.
package dataurl

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var ErrMalformed = errors.New("not a valid base64 image data URL")

// shape matches the full data-URL form, including a strictly base64 payload.
var shape = regexp.MustCompile(`^data:image/([a-zA-Z]+);base64,([A-Za-z0-9+/]+=*)$`)

// Decode parses a data URL and returns the decoded image bytes.
func Decode(s string) ([]byte, error) {
	m := shape.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrMalformed
	}
	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, ErrMalformed
	}
	return raw, nil
}

// Format returns the normalized file extension declared by the data
// URL. Unrecognized or missing subtypes fall back to "jpg".
func Format(s string) string {
	m := shape.FindStringSubmatch(s)
	if m == nil {
		return "jpg"
	}
	switch strings.ToLower(m[1]) {
	case "jpeg", "jpg":
		return "jpg"
	case "png", "gif", "bmp", "tiff":
		return strings.ToLower(m[1])
	default:
		return "jpg"
	}
}

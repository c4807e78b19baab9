package project

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Decode converts data from the named encoding into UTF-8. UTF-8 input is
// returned byte for byte, invalid sequences included.
func Decode(data []byte, name string) (string, error) {
	dec, err := decoderFor(name)
	if err != nil {
		return "", err
	}
	if dec == nil {
		return string(data), nil
	}
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// decoderFor returns nil for UTF-8 and for an empty name.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc.NewDecoder(), nil
}

package http

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const etagDigestSize = 16

// weakETag derives a weak validator from a 128-bit BLAKE2b digest of body.
func weakETag(body []byte) string {
	hash, err := blake2b.New(etagDigestSize, nil)
	if err != nil {
		// Only reachable with an invalid size or key.
		panic(err)
	}
	hash.Write(body)
	return `W/"` + hex.EncodeToString(hash.Sum(nil)) + `"`
}

// etagMatches applies the weak comparison of an If-None-Match header value.
func etagMatches(header, tag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	want := strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}

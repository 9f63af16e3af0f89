package server

import (
	"compress/gzip"
	"compress/zlib"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

var errUnsupportedEncoding = errors.New("unsupported content encoding")

func newEncodedReader(enc string, r io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "identity":
		return r, nil
	case "gzip", "x-gzip":
		return gzip.NewReader(r)
	case "deflate":
		return zlib.NewReader(r)
	case "compress", "br":
		return nil, errors.Wrapf(errUnsupportedEncoding, "%q", enc)
	default:
		slog.Warn("unknown encoding", "enc", enc)
		return r, nil
	}
}

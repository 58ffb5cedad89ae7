package prudp

import (
	"bytes"
	"compress/zlib"
	"io"
)

// compressPayload zlib-compresses data when the connection's settings have
// compression enabled; otherwise it returns data unchanged. There is no
// compression library in the reference corpus to ground this on beyond the
// standard library's compress/zlib, which is what this runtime uses.
func compressPayload(data []byte, useCompression bool) ([]byte, error) {
	if !useCompression {
		return data, nil
	}

	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decompressPayload reverses compressPayload.
func decompressPayload(data []byte, useCompression bool) ([]byte, error) {
	if !useCompression {
		return data, nil
	}

	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

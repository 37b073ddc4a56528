package statfile

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	gzErr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// OpenGzip opens a gzip compressed file for reading. Errors from os.Open are
// returned unwrapped so callers can test them with errors.Is(err, fs.ErrNotExist).
func OpenGzip(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, &FormatError{Format: "gzip", Path: path, Err: err}
	}
	return &gzipFile{Reader: zr, file: file}, nil
}

type gzipWriter struct {
	*gzip.Writer
	file *os.File
}

func (g *gzipWriter) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}

// CreateGzip creates (or truncates) path and returns a writer that compresses
// everything written to it. Close flushes the gzip stream and the file.
func CreateGzip(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	zw, err := gzip.NewWriterLevel(file, gzip.BestCompression)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipWriter{Writer: zw, file: file}, nil
}

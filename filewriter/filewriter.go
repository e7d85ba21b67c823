// Package filewriter persists output files, optionally producing
// precompressed .gz and .br siblings next to them.
package filewriter

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
)

// CompressConfig is the `compress:` section of the config file.
type CompressConfig struct {
	Methods    []string `yaml:"methods"`
	Extensions []string `yaml:"extensions"`
}

type compressor struct {
	ext string
	new func(w io.Writer) io.WriteCloser
}

const (
	gzipLevel   = 9
	brotliLevel = 11
)

var gzipCompressor = &compressor{
	ext: "gz",
	new: func(w io.Writer) io.WriteCloser {
		z, err := gzip.NewWriterLevel(w, gzipLevel)
		if err != nil {
			panic(err.Error()) // shouldn't happen
		}
		return z
	},
}

var brotliCompressor = &compressor{
	ext: "br",
	new: func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, brotliLevel)
	},
}

// FileWriter writes files and their compressed siblings.
type FileWriter struct {
	compressedExtensions map[string]struct{}
	compressors          []*compressor
}

// New returns a FileWriter for the given compression config.
// A nil config means plain writes without compressed siblings.
func New(c *CompressConfig) (*FileWriter, error) {
	extensions := make(map[string]struct{})
	compressors := make([]*compressor, 0)
	if c != nil {
		for _, v := range c.Extensions {
			extensions["."+v] = struct{}{}
		}
		for _, v := range c.Methods {
			switch v {
			case "gzip":
				compressors = append(compressors, gzipCompressor)
			case "br":
				compressors = append(compressors, brotliCompressor)
			default:
				return nil, fmt.Errorf("unknown compression method: %q", v)
			}
		}
	}
	return &FileWriter{
		compressedExtensions: extensions,
		compressors:          compressors,
	}, nil
}

// shouldCompress reports whether files with the extension get
// compressed siblings. An empty extension list means every file does.
func (f *FileWriter) shouldCompress(ext string) bool {
	if len(f.compressors) == 0 {
		return false
	}
	if len(f.compressedExtensions) == 0 {
		return true
	}
	_, ok := f.compressedExtensions[ext]
	return ok
}

func writeCompressed(c *compressor, filename string, data []byte) (err error) {
	out, err := os.OpenFile(filename+"."+c.ext, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out.Name())
		}
	}()
	z := c.new(out)
	if _, err = z.Write(data); err != nil {
		z.Close()
		return err
	}
	return z.Close()
}

// WriteFile writes data to filename, creating parent directories as
// needed, and produces the configured compressed siblings.
func (f *FileWriter) WriteFile(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}
	if !f.shouldCompress(filepath.Ext(filename)) {
		return nil
	}
	for _, c := range f.compressors {
		if err := writeCompressed(c, filename, data); err != nil {
			return err
		}
	}
	return nil
}

package source

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Open selects one of the three backends for path: a ".gz"-suffixed path
// is gunzipped to a temp file when extractGzip is true (the common case:
// callers get random access and
// pay the decompression cost once up front), gunzipped fully into memory
// when extractGzip is false but inMemory is true, or wrapped as a streaming
// GzipSource otherwise. A non-gzip path is read fully into memory when
// inMemory is true, or mmap'd in place otherwise.
func Open(path string, extractGzip, inMemory bool) (Source, error) {
	isGzip := strings.HasSuffix(path, ".gz")

	switch {
	case isGzip && extractGzip:
		tempPath, err := decompressToTemp(path)
		if err != nil {
			return nil, err
		}
		pf, err := OpenPlainFile(tempPath)
		if err != nil {
			os.Remove(tempPath)
			return nil, err
		}
		pf.tempPath = tempPath
		return pf, nil

	case isGzip && inMemory:
		data, err := decompressToMemory(path)
		if err != nil {
			return nil, err
		}
		return NewMemorySource(data), nil

	case isGzip:
		return NewGzipSource(path), nil

	case inMemory:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return NewMemorySource(data), nil

	default:
		return OpenPlainFile(path)
	}
}

func decompressToTemp(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	tmp, err := os.CreateTemp("", "mzml-*.mzML")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, zr); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func decompressToMemory(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

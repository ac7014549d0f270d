package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func loadFile(ctx context.Context, path string, maxBytes int64) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("document loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("document loader: %s is a directory", path)
		}
		if maxBytes > 0 && info.Size() > maxBytes {
			return nil, errTooLarge(path, maxBytes)
		}
	}
	return readLimited(f, path, maxBytes)
}

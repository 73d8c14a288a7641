package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// writePNG encodes img to path, or to w when path is "-".
func writePNG(w io.Writer, path string, img image.Image) error {
	if path == "-" {
		return png.Encode(w, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := png.Encode(bw, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

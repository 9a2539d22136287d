package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal converts a tree to indented JSON bytes.
// A nil root marshals to the JSON literal null, which is how the pipeline
// signals "no data yet" to the renderer.
func Marshal(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTreeTo(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTree writes a tree as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteTreeFile for files.
func WriteTree(root *Node, w io.Writer) error {
	return writeTreeTo(root, w)
}

// WriteTreeFile writes a tree to a JSON file.
// The file is created with 0644 permissions.
func WriteTreeFile(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTreeTo(root, f)
}

// ReadTree decodes a JSON tree from an io.Reader.
// A JSON null decodes to a nil root with no error.
func ReadTree(r io.Reader) (*Node, error) {
	var root *Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return root, nil
}

// ReadTreeFile reads a JSON file and returns the decoded tree.
func ReadTreeFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

func writeTreeTo(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

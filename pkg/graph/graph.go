package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene converts a scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSceneTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalScene decodes JSON bytes into a scene and validates every wood.
func UnmarshalScene(data []byte) (Scene, error) {
	return readSceneFrom(bytes.NewReader(data))
}

// WriteSceneFile writes a scene to a JSON file.
// The file is created with 0644 permissions.
func WriteSceneFile(s Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSceneTo(s, f)
}

// WriteScene writes a scene as JSON to an io.Writer.
func WriteScene(s Scene, w io.Writer) error {
	return writeSceneTo(s, w)
}

// ReadSceneFile reads a JSON file and returns the decoded scene.
func ReadSceneFile(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSceneFrom(f)
}

// ReadScene decodes a JSON scene from an io.Reader.
func ReadScene(r io.Reader) (Scene, error) {
	return readSceneFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeSceneTo(s Scene, w io.Writer) error {
	if s.Woods == nil {
		s.Woods = []Wood{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSceneFrom(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, fmt.Errorf("decode: %w", err)
	}
	for i := range s.Woods {
		if err := s.Woods[i].Validate(); err != nil {
			return Scene{}, err
		}
	}
	return s, nil
}

package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is where simulate writes and the analysis commands read.
const DefaultPath = "data/hyperion_data.json"

// Load reads a series document from path. A missing file yields an error
// wrapping ErrMissingInput.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func Decode(r io.Reader) (*Series, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return fromDocument(doc)
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s *Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func Encode(w io.Writer, s *Series) error {
	enc := json.NewEncoder(w)
	return enc.Encode(toDocument(s))
}

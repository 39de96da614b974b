package books

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"booktok/internal/types"
)

// LoadFile reads the JSON array of records written by the scraper.
func LoadFile(path string) ([]types.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]types.Book, error) {
	var records []types.Book
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	// slug is derived data, whatever the file says about it is ignored
	for ix := range records {
		records[ix].Slug = ""
	}

	return records, nil
}

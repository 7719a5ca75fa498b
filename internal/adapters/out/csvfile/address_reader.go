// Package csvfile reads stop addresses from uploaded CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"optiroute/internal/core/ports"
)

const fieldSeparator = ", "

// AddressReader turns every non-empty CSV row into one address by joining
// its fields, so "Sienkiewicza 20","Wroclaw" becomes "Sienkiewicza 20, Wroclaw".
type AddressReader struct{}

func NewAddressReader() AddressReader {
	return AddressReader{}
}

// Read returns the addresses of the file at path in row order.
// A missing file yields an error wrapping ports.ErrFileMissing.
func (r AddressReader) Read(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ports.ErrFileMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	return parse(ctx, f)
}

func parse(ctx context.Context, src io.Reader) ([]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	addresses := make([]string, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return addresses, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse input file: %w", err)
		}

		if len(record) == 0 {
			continue
		}
		addresses = append(addresses, strings.Join(record, fieldSeparator))
	}
}

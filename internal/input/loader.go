package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sirescan/internal/model"
)

// Required column names. Matching is case-sensitive to keep the contract
// identical to the sale sheets this tool has always consumed.
const (
	columnSire     = "Sire"
	columnSaleYear = "sale_year"
)

// Loader errors.
var (
	// ErrInvalidSchema is returned when the input file does not have
	// exactly the required Sire and sale_year columns, or a row does not
	// conform to them. Fatal for the whole run.
	ErrInvalidSchema = errors.New("invalid input schema: file must contain exactly the columns Sire and sale_year")
)

// LoadFile reads sire entries from a CSV file.
func LoadFile(path string) ([]model.SireEntry, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	entries, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Load reads sire entries from CSV data. The header must contain exactly
// the Sire and sale_year columns in any order; every following row must
// provide a non-empty name and an integer sale year. Order is preserved.
func Load(r io.Reader) ([]model.SireEntry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidSchema)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	sireIdx, yearIdx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var entries []model.SireEntry
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[sireIdx])
		if name == "" {
			return nil, fmt.Errorf("%w: empty sire name on line %d", ErrInvalidSchema, line)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: non-integer sale_year on line %d", ErrInvalidSchema, line)
		}

		entries = append(entries, model.SireEntry{Name: name, SaleYear: year})
	}

	return entries, nil
}

// columnIndexes validates the header and locates the two required columns.
func columnIndexes(header []string) (sireIdx, yearIdx int, err error) {
	if len(header) != 2 {
		return 0, 0, fmt.Errorf("%w: got %d columns", ErrInvalidSchema, len(header))
	}

	sireIdx, yearIdx = -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case columnSire:
			sireIdx = i
		case columnSaleYear:
			yearIdx = i
		}
	}
	if sireIdx < 0 || yearIdx < 0 {
		return 0, 0, fmt.Errorf("%w: got columns %v", ErrInvalidSchema, header)
	}
	return sireIdx, yearIdx, nil
}

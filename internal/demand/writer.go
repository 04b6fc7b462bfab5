package demand

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes records as a flat CSV table with a header row.
func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating demand output: %w", err)
	}
	if err := gocsv.Marshal(&records, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing demand records: %w", err)
	}
	return f.Close()
}

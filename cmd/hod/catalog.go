package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexieleauthaud/halotools"
)

// readCatalog reads a CSV file whose first row names the columns.
func readCatalog(path string) (halotools.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCatalog(f)
}

func parseCatalog(r io.Reader) (halotools.Catalog, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog header: %w", err)
	}
	cat := make(halotools.Catalog, len(header))
	for _, k := range header {
		if _, dup := cat[k]; dup {
			return nil, fmt.Errorf("duplicate catalog column %q", k)
		}
		cat[k] = nil
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("catalog line %v column %q: %w", line, header[i], err)
			}
			cat[header[i]] = append(cat[header[i]], v)
		}
	}
	return cat, nil
}

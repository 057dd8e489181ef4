// Package seed provides the initial directory dataset loaded into the store
// at startup, from the embedded Nyamata data, a JSON file, or PostgreSQL.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stwalsh4118/icyapa/internal/models"
)

//go:embed nyamata.json
var nyamataJSON []byte

// ErrInvalidDataset is returned when a dataset breaks referential or slug invariants.
var ErrInvalidDataset = errors.New("invalid seed dataset")

// Dataset is a complete set of directory records.
type Dataset struct {
	Zones      []models.StreetZone `json:"zones"`
	Buildings  []models.Building   `json:"buildings"`
	Businesses []models.Business   `json:"businesses"`
	Ads        []models.Ad         `json:"ads"`
}

// Default returns the embedded Nyamata dataset. Each call returns a fresh copy.
func Default() Dataset {
	ds, err := Parse(bytes.NewReader(nyamataJSON))
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(fmt.Sprintf("embedded seed dataset is invalid: %v", err))
	}
	return ds
}

// Parse decodes a JSON dataset and validates it.
func Parse(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode seed dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// LoadFile reads and validates a JSON dataset from path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return ds, nil
}

// Validate checks identity and slug uniqueness and that every business
// references a known building.
func (d Dataset) Validate() error {
	zoneIDs := make(map[string]struct{}, len(d.Zones))
	zoneSlugs := make(map[string]struct{}, len(d.Zones))
	for _, z := range d.Zones {
		if z.ZoneID == "" || z.Slug == "" {
			return fmt.Errorf("%w: zone %q is missing an id or slug", ErrInvalidDataset, z.ZoneName)
		}
		if _, dup := zoneIDs[z.ZoneID]; dup {
			return fmt.Errorf("%w: duplicate zone id %s", ErrInvalidDataset, z.ZoneID)
		}
		if _, dup := zoneSlugs[z.Slug]; dup {
			return fmt.Errorf("%w: duplicate zone slug %s", ErrInvalidDataset, z.Slug)
		}
		zoneIDs[z.ZoneID] = struct{}{}
		zoneSlugs[z.Slug] = struct{}{}
	}

	buildingIDs := make(map[string]struct{}, len(d.Buildings))
	buildingSlugs := make(map[string]struct{}, len(d.Buildings))
	for _, b := range d.Buildings {
		if b.BuildingID == "" || b.Slug == "" {
			return fmt.Errorf("%w: building %q is missing an id or slug", ErrInvalidDataset, b.BuildingName)
		}
		if _, dup := buildingIDs[b.BuildingID]; dup {
			return fmt.Errorf("%w: duplicate building id %s", ErrInvalidDataset, b.BuildingID)
		}
		if _, dup := buildingSlugs[b.Slug]; dup {
			return fmt.Errorf("%w: duplicate building slug %s", ErrInvalidDataset, b.Slug)
		}
		buildingIDs[b.BuildingID] = struct{}{}
		buildingSlugs[b.Slug] = struct{}{}
	}

	businessIDs := make(map[string]struct{}, len(d.Businesses))
	for _, b := range d.Businesses {
		if b.BusinessID == "" {
			return fmt.Errorf("%w: business %q is missing an id", ErrInvalidDataset, b.BusinessName)
		}
		if _, dup := businessIDs[b.BusinessID]; dup {
			return fmt.Errorf("%w: duplicate business id %s", ErrInvalidDataset, b.BusinessID)
		}
		if _, ok := buildingIDs[b.BuildingID]; !ok {
			return fmt.Errorf("%w: business %s references unknown building %s",
				ErrInvalidDataset, b.BusinessID, b.BuildingID)
		}
		businessIDs[b.BusinessID] = struct{}{}
	}

	return nil
}

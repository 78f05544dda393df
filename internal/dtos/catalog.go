package dtos

import (
	"time"
)

const asOfFormat = "2006-01-02"

// CatalogQueryDto carries the optional asOf date and scope of a catalog
// read. An empty asOf means "today"; scope "all" skips the validity-window
// filter.
type CatalogQueryDto struct {
	AsOf  string `json:"asOf"  schema:"asOf"`
	Scope string `json:"scope" schema:"scope"`
}

func (dto *CatalogQueryDto) Validate() (bool, map[string]string) {
	errs := make(map[string]string)

	if dto.AsOf != "" {
		if _, err := time.Parse(asOfFormat, dto.AsOf); err != nil {
			errs["asOf"] = "must be a date formatted as 2006-01-02"
		}
	}

	if dto.Scope != "" && dto.Scope != "all" && dto.Scope != "active" {
		errs["scope"] = "must be one of 'all' or 'active'"
	}

	return len(errs) == 0, errs
}

func (dto *CatalogQueryDto) All() bool {
	return dto.Scope == "all"
}

// AsOfTime resolves the requested point in time, defaulting to now.
func (dto *CatalogQueryDto) AsOfTime(now time.Time) time.Time {
	if dto.AsOf == "" {
		return now
	}

	asOf, err := time.Parse(asOfFormat, dto.AsOf)
	if err != nil {
		return now
	}

	return asOf
}

// Package catalogue normalizes published releases into an ordered set of
// installable toolchain versions.
package catalogue

import (
	"context"
	"fmt"
	"slices"

	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/release"
	"github.com/conn-castle/compactup/internal/version"
)

// DefaultTagPrefix precedes the version in every toolchain release tag.
const DefaultTagPrefix = "compactc-v"

// Record is one published version with an artifact per platform family.
type Record struct {
	Version version.Version
	Tag     string
	Linux   release.Asset
	MacOS   release.Asset
}

// Asset returns the artifact serving target.
func (r Record) Asset(target platform.Target) release.Asset {
	if target.Family() == platform.FamilyMacOS {
		return r.MacOS
	}
	return r.Linux
}

// FormatError reports a release that does not have the expected shape.
type FormatError struct {
	Release string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(messages.CatalogueFormatFmt, e.Release, e.Reason)
}

// NotFoundError reports that no catalogue entry satisfied a request.
type NotFoundError struct {
	// Spec is the requested specifier; empty means "latest".
	Spec string
}

func (e *NotFoundError) Error() string {
	if e.Spec == "" {
		return messages.CatalogueEmpty
	}
	return fmt.Sprintf(messages.CatalogueNoMatchFmt, e.Spec)
}

// Catalogue is the set of known remote versions, ordered ascending by version.
// It is built fresh for each command and only shrinks through Select.
type Catalogue struct {
	records []Record
}

// New builds a catalogue from records in any order. Duplicate versions keep the last record.
func New(records []Record) *Catalogue {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return a.Version.Compare(b.Version)
	})
	sorted = slices.CompactFunc(sorted, func(a, b Record) bool {
		return a.Version == b.Version
	})
	return &Catalogue{records: sorted}
}

// Load queries src and builds the catalogue. Any malformed release fails the whole load.
func Load(ctx context.Context, src release.Source, tagPrefix string) (*Catalogue, error) {
	releases, err := src.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	return FromReleases(releases, tagPrefix)
}

// FromReleases validates releases and converts them into a catalogue.
func FromReleases(releases []release.Release, tagPrefix string) (*Catalogue, error) {
	records := make([]Record, 0, len(releases))
	seen := make(map[version.Version]string, len(releases))
	for _, rel := range releases {
		rec, err := recordFromRelease(rel, tagPrefix)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[rec.Version]; ok {
			return nil, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueDuplicateVersionFmt, rec.Version, prev)}
		}
		seen[rec.Version] = rel.Tag
		records = append(records, rec)
	}
	return New(records), nil
}

func recordFromRelease(rel release.Release, tagPrefix string) (Record, error) {
	v, err := version.TrimTag(rel.Tag, tagPrefix)
	if err != nil {
		return Record{}, &FormatError{Release: rel.Tag, Reason: err.Error()}
	}
	rec := Record{Version: v, Tag: rel.Tag}
	var haveLinux, haveMacOS bool
	for _, asset := range rel.Assets {
		family, ok := platform.ClassifyAsset(asset.Name)
		if !ok {
			return Record{}, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueUnknownAssetFmt, asset.Name)}
		}
		switch family {
		case platform.FamilyLinux:
			if haveLinux {
				return Record{}, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueDuplicateAssetFmt, family, asset.Name)}
			}
			rec.Linux, haveLinux = asset, true
		case platform.FamilyMacOS:
			if haveMacOS {
				return Record{}, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueDuplicateAssetFmt, family, asset.Name)}
			}
			rec.MacOS, haveMacOS = asset, true
		}
	}
	if !haveLinux {
		return Record{}, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueMissingFamilyFmt, platform.FamilyLinux)}
	}
	if !haveMacOS {
		return Record{}, &FormatError{Release: rel.Tag, Reason: fmt.Sprintf(messages.CatalogueMissingFamilyFmt, platform.FamilyMacOS)}
	}
	return rec, nil
}

// Len returns the number of versions remaining.
func (c *Catalogue) Len() int {
	return len(c.records)
}

// Versions returns the remaining versions in ascending order.
func (c *Catalogue) Versions() []version.Version {
	out := make([]version.Version, len(c.records))
	for i, rec := range c.records {
		out[i] = rec.Version
	}
	return out
}

// Records returns a copy of the remaining records in ascending order.
func (c *Catalogue) Records() []Record {
	return slices.Clone(c.records)
}

// Latest returns the highest version without consuming it.
func (c *Catalogue) Latest() (Record, bool) {
	if len(c.records) == 0 {
		return Record{}, false
	}
	return c.records[len(c.records)-1], true
}

// Select picks the highest version matching spec, or the highest version
// overall when spec is nil, and removes it from the catalogue.
func (c *Catalogue) Select(spec *version.Spec) (Record, error) {
	for i := len(c.records) - 1; i >= 0; i-- {
		rec := c.records[i]
		if spec != nil && !spec.Matches(rec.Version) {
			continue
		}
		c.records = slices.Delete(c.records, i, i+1)
		return rec, nil
	}
	if spec == nil {
		return Record{}, &NotFoundError{}
	}
	return Record{}, &NotFoundError{Spec: spec.String()}
}

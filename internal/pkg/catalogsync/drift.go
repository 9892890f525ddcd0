package catalogsync

import (
	"strconv"
	"strings"
	"time"

	"github.com/pagebound/BookCrate/app/models"
)

const (
	DriftMatch    = "match"
	DriftMismatch = "mismatch"
	DriftMissing  = "missing"
)

// DriftField is one compared field in a drift report. Local and Remote hold
// the display forms shown to the operator; Status is the comparison result.
type DriftField struct {
	Field  string `json:"field"`
	Local  string `json:"local"`
	Remote string `json:"remote"`
	Status string `json:"status"`
}

// DriftReport is the per-field comparison between a local package and its
// last-fetched remote representation. Transient; computed per render.
type DriftReport struct {
	PackageID uint         `json:"package_id"`
	Fields    []DriftField `json:"fields"`
}

// ComputeDrift compares a package against a remote snapshot. It is a pure
// function of its inputs: no I/O, no clock, safe to call repeatedly. A nil
// snapshot means "never synced" and reports every field as missing.
//
// Theme and tier are compared by their numeric references in the metadata
// bag; themeName and tierName only annotate the local side of the report.
func ComputeDrift(pkg *models.Package, snap *ProductSnapshot, themeName, tierName string) DriftReport {
	meta := NewProductMetadata(pkg)

	localTheme := meta.ThemeID
	if themeName != "" {
		localTheme = themeName + " (" + meta.ThemeID + ")"
	}
	localTier := meta.PackageTier
	if tierName != "" {
		localTier = tierName + " (" + meta.PackageTier + ")"
	}

	genres := strings.Join(pkg.GenreList(), ",")
	createdAt := pkg.CreatedAt.UTC().Format(time.RFC3339)
	updatedAt := pkg.UpdatedAt.UTC().Format(time.RFC3339)

	report := DriftReport{PackageID: pkg.ID}

	if snap == nil {
		for _, f := range []struct{ name, local string }{
			{"name", pkg.Name},
			{"slug", pkg.Slug},
			{"price", strconv.FormatInt(MinorUnits(pkg.Price), 10)},
			{"theme", localTheme},
			{"tier", localTier},
			{"allowed_genres", genres},
			{"created_at", createdAt},
			{"updated_at", updatedAt},
		} {
			report.Fields = append(report.Fields, DriftField{Field: f.name, Local: f.local, Status: DriftMissing})
		}
		return report
	}

	report.Fields = append(report.Fields, compareValue("name", pkg.Name, snap.Product.Name))
	report.Fields = append(report.Fields, compareMeta("slug", pkg.Slug, pkg.Slug, snap.Product.Metadata, "slug"))
	report.Fields = append(report.Fields, comparePrice(pkg, snap.Price))
	report.Fields = append(report.Fields, compareMeta("theme", localTheme, meta.ThemeID, snap.Product.Metadata, "theme_id"))
	report.Fields = append(report.Fields, compareMeta("tier", localTier, meta.PackageTier, snap.Product.Metadata, "package_tier"))
	report.Fields = append(report.Fields, compareMeta("allowed_genres", genres, genres, snap.Product.Metadata, "allowed_genres"))
	report.Fields = append(report.Fields, compareMeta("created_at", createdAt, createdAt, snap.Product.Metadata, "created_at"))
	report.Fields = append(report.Fields, compareMeta("updated_at", updatedAt, updatedAt, snap.Product.Metadata, "updated_at"))
	return report
}

func compareValue(field, local, remote string) DriftField {
	f := DriftField{Field: field, Local: local, Remote: remote, Status: DriftMismatch}
	if remote == "" {
		f.Status = DriftMissing
	} else if local == remote {
		f.Status = DriftMatch
	}
	return f
}

// compareMeta compares by exact string equality against a metadata key.
// localDisplay is what the operator sees; localValue is what is compared.
func compareMeta(field, localDisplay, localValue string, meta map[string]string, key string) DriftField {
	f := DriftField{Field: field, Local: localDisplay, Status: DriftMissing}
	remote, ok := meta[key]
	if !ok {
		return f
	}
	f.Remote = remote
	if localValue == remote {
		f.Status = DriftMatch
	} else {
		f.Status = DriftMismatch
	}
	return f
}

func comparePrice(pkg *models.Package, price *Price) DriftField {
	want := MinorUnits(pkg.Price)
	f := DriftField{Field: "price", Local: strconv.FormatInt(want, 10), Status: DriftMissing}
	if price == nil {
		return f
	}
	f.Remote = strconv.FormatInt(price.UnitAmount, 10)
	if price.UnitAmount == want {
		f.Status = DriftMatch
	} else {
		f.Status = DriftMismatch
	}
	return f
}

package catalogsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/BookCrate/app/models"
)

func driftTestPackage() *models.Package {
	themeID := uint(7)
	return &models.Package{
		ID:            42,
		Name:          "Cozy Winter Crate",
		Slug:          "cozy-winter-crate",
		ThemeID:       &themeID,
		Price:         29.99,
		AllowedGenres: "fantasy, mystery",
		PackageTierID: 3,
		PackageTier: &models.PackageTier{
			ID:             3,
			SupportsThemed: true,
		},
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
}

func fieldByName(t *testing.T, report DriftReport, name string) DriftField {
	t.Helper()
	for _, f := range report.Fields {
		if f.Field == name {
			return f
		}
	}
	t.Fatalf("field %q not in report", name)
	return DriftField{}
}

func TestComputeDriftNilSnapshotReportsAllMissing(t *testing.T) {
	pkg := driftTestPackage()

	report := ComputeDrift(pkg, nil, "Cozy Winter", "Classic")

	require.Len(t, report.Fields, 8)
	assert.Equal(t, uint(42), report.PackageID)
	for _, f := range report.Fields {
		assert.Equal(t, DriftMissing, f.Status, "field %s", f.Field)
		assert.Empty(t, f.Remote)
	}

	assert.Equal(t, "2999", fieldByName(t, report, "price").Local)
	assert.Equal(t, "Cozy Winter (7)", fieldByName(t, report, "theme").Local)
	assert.Equal(t, "Classic (3)", fieldByName(t, report, "tier").Local)
	assert.Equal(t, "fantasy,mystery", fieldByName(t, report, "allowed_genres").Local)
}

func TestComputeDriftMatching(t *testing.T) {
	pkg := driftTestPackage()
	snap := &ProductSnapshot{
		Product: Product{
			ID:   "prod_1",
			Name: "Cozy Winter Crate",
			Metadata: map[string]string{
				"slug":           "cozy-winter-crate",
				"theme_id":       "7",
				"package_tier":   "3",
				"allowed_genres": "fantasy,mystery",
				"created_at":     "2026-01-10T08:00:00Z",
				"updated_at":     "2026-02-01T09:30:00Z",
			},
		},
		Price: &Price{ID: "price_1", UnitAmount: 2999},
	}

	report := ComputeDrift(pkg, snap, "Cozy Winter", "Classic")

	for _, f := range report.Fields {
		assert.Equal(t, DriftMatch, f.Status, "field %s", f.Field)
	}
}

func TestComputeDriftMismatchAndMissingFields(t *testing.T) {
	pkg := driftTestPackage()
	snap := &ProductSnapshot{
		Product: Product{
			ID:   "prod_1",
			Name: "Old Name",
			Metadata: map[string]string{
				"slug":     "cozy-winter-crate",
				"theme_id": "9",
				// package_tier and the audit keys are absent
			},
		},
		Price: &Price{ID: "price_1", UnitAmount: 2599},
	}

	report := ComputeDrift(pkg, snap, "", "")

	assert.Equal(t, DriftMismatch, fieldByName(t, report, "name").Status)
	assert.Equal(t, DriftMatch, fieldByName(t, report, "slug").Status)

	price := fieldByName(t, report, "price")
	assert.Equal(t, DriftMismatch, price.Status)
	assert.Equal(t, "2999", price.Local)
	assert.Equal(t, "2599", price.Remote)

	theme := fieldByName(t, report, "theme")
	assert.Equal(t, DriftMismatch, theme.Status)
	assert.Equal(t, "7", theme.Local)
	assert.Equal(t, "9", theme.Remote)

	assert.Equal(t, DriftMissing, fieldByName(t, report, "tier").Status)
	assert.Equal(t, DriftMissing, fieldByName(t, report, "allowed_genres").Status)
	assert.Equal(t, DriftMissing, fieldByName(t, report, "created_at").Status)
	assert.Equal(t, DriftMissing, fieldByName(t, report, "updated_at").Status)
}

func TestComputeDriftMissingPrice(t *testing.T) {
	pkg := driftTestPackage()
	snap := &ProductSnapshot{
		Product: Product{ID: "prod_1", Name: pkg.Name, Metadata: map[string]string{}},
	}

	report := ComputeDrift(pkg, snap, "", "")

	price := fieldByName(t, report, "price")
	assert.Equal(t, DriftMissing, price.Status)
	assert.Equal(t, "2999", price.Local)
}

func TestComputeDriftIsPure(t *testing.T) {
	pkg := driftTestPackage()
	snap := &ProductSnapshot{
		Product: Product{Name: pkg.Name, Metadata: map[string]string{"slug": pkg.Slug}},
		Price:   &Price{UnitAmount: 2999},
	}

	first := ComputeDrift(pkg, snap, "Cozy Winter", "Classic")
	second := ComputeDrift(pkg, snap, "Cozy Winter", "Classic")

	assert.Equal(t, first, second)
}

func TestNewProductMetadataNullCoercion(t *testing.T) {
	pkg := &models.Package{
		ID:            1,
		Slug:          "plain-crate",
		PackageTierID: 0,
	}

	meta := NewProductMetadata(pkg)

	assert.Equal(t, "null", meta.ThemeID)
	assert.Equal(t, "null", meta.PackageTier)
	assert.Equal(t, "false", meta.SupportsThemed)
	assert.Equal(t, "false", meta.SupportsRegular)

	values := meta.Values()
	require.Len(t, values, 5)
	assert.Equal(t, "plain-crate", values["slug"])
	assert.Equal(t, "null", values["theme_id"])
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageGenreList(t *testing.T) {
	tests := []struct {
		name   string
		genres string
		want   []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "fantasy", []string{"fantasy"}},
		{"multiple with spaces", "fantasy, mystery , scifi", []string{"fantasy", "mystery", "scifi"}},
		{"trailing comma", "fantasy,mystery,", []string{"fantasy", "mystery"}},
		{"empty segments", "fantasy,,mystery", []string{"fantasy", "mystery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Package{AllowedGenres: tt.genres}
			assert.Equal(t, tt.want, p.GenreList())
		})
	}
}

func TestPackageSyncStateIsSynced(t *testing.T) {
	var nilState *PackageSyncState
	assert.False(t, nilState.IsSynced())
	assert.False(t, (&PackageSyncState{}).IsSynced())
	assert.False(t, (&PackageSyncState{Status: SyncStatusFailed}).IsSynced())
	assert.True(t, (&PackageSyncState{StripeProductID: "prod_1"}).IsSynced())
}

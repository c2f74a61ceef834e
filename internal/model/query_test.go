package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanQueryValidate(t *testing.T) {
	vols := []Volume{{ID: "C", Path: `C:\`}}

	tests := []struct {
		name    string
		query   ScanQuery
		wantErr bool
	}{
		{"valid", NewScanQuery(" report ", KindFile, vols), false},
		{"empty target", NewScanQuery("", KindFile, vols), true},
		{"blank target", NewScanQuery("   ", KindFolder, vols), true},
		{"no volumes", NewScanQuery("x", KindFile, nil), true},
		{"bad kind", ScanQuery{Target: "x", Kind: MatchKind(7), Volumes: vols}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewScanQueryTrims(t *testing.T) {
	q := NewScanQuery("  log \t", KindFolder, nil)
	assert.Equal(t, "log", q.Target)
}

func TestParseMatchKind(t *testing.T) {
	k, err := ParseMatchKind("Folder")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, k)

	k, err = ParseMatchKind("file")
	require.NoError(t, err)
	assert.Equal(t, KindFile, k)
	assert.Equal(t, "file", k.String())

	_, err = ParseMatchKind("symlink")
	assert.Error(t, err)
}

func TestProgressFraction(t *testing.T) {
	assert.Zero(t, ScanProgress{}.Fraction())
	assert.InDelta(t, 0.5, ScanProgress{VolumesDone: 1, VolumesTotal: 2}.Fraction(), 1e-9)
	assert.Equal(t, 1.0, ScanProgress{VolumesDone: 3, VolumesTotal: 2}.Fraction())
}

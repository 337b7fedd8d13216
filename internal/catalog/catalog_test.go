package catalog

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/limber/internal/errors"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c, 12)
	require.NoError(t, c.Validate())
	assert.Equal(t, 6, c.BilateralCount())
	assert.Equal(t, "90-90", c[0].Name)
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a[0].Name = "changed"

	assert.Equal(t, "90-90", Default()[0].Name)
}

func TestExercise_KeyAndSteps(t *testing.T) {
	e := Exercise{Name: "  Half Split ", Bilateral: true}
	assert.Equal(t, "half split", e.Key())
	assert.Equal(t, 2, e.Steps())
	assert.Equal(t, 1, Exercise{Name: "Squat"}.Steps())
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr error
	}{
		{
			name:    "valid",
			catalog: Catalog{{Name: "A"}, {Name: "B", Bilateral: true}},
		},
		{
			name:    "empty",
			catalog: Catalog{},
			wantErr: errors.ErrCatalogInvalid,
		},
		{
			name:    "blank name",
			catalog: Catalog{{Name: "A"}, {Name: "   "}},
			wantErr: errors.ErrCatalogInvalid,
		},
		{
			name:    "case-insensitive duplicate",
			catalog: Catalog{{Name: "Wide Leg Forward Fold"}, {Name: "Wide leg forward fold"}},
			wantErr: errors.ErrDuplicateExercise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
exercises:
  - name: " Lunge "
    bilateral: true
  - name: Squat
`)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Catalog{{Name: "Lunge", Bilateral: true}, {Name: "Squat"}}, c)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "exercises: [\n"},
		{"unknown field", "exercises:\n  - name: A\n    sides: 2\n"},
		{"no exercises", "exercises: []\n"},
		{"duplicate", "exercises:\n  - name: A\n  - name: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsUserFacing(err), "catalog errors should be user facing: %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/stretches.yaml", []byte("exercises:\n  - name: Neck Roll\n"), 0644))

	c, err := Load(fs, "/cfg/stretches.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"Neck Roll"}, c.Names())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.yaml")
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestWriteThenLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, Write(fs, "/a/b/catalog.yaml", Default()))

	c, err := Load(fs, "/a/b/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestWrite_RejectsInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := Write(fs, "/c.yaml", Catalog{{Name: "A"}, {Name: "A"}})
	require.ErrorIs(t, err, errors.ErrDuplicateExercise)

	exists, _ := afero.Exists(fs, "/c.yaml")
	assert.False(t, exists)
}

func TestCatalog_Clone(t *testing.T) {
	c := Catalog{{Name: "A"}}
	clone := c.Clone()
	clone[0].Name = "B"
	assert.Equal(t, "A", c[0].Name)
}

// Package catalog provides the exercises a routine is drawn from: the
// built-in catalog, YAML catalog files and a watcher that reloads a catalog
// file when it changes on disk.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/limber/internal/errors"
)

// Exercise is a single stretch. Bilateral exercises are performed on the
// left side and then the right side.
type Exercise struct {
	Name      string `yaml:"name"`
	Bilateral bool   `yaml:"bilateral"`
}

// Key returns the exercise's identity: the trimmed, lower-cased name.
func (e Exercise) Key() string {
	return strings.ToLower(strings.TrimSpace(e.Name))
}

// Steps returns the number of sides the exercise takes.
func (e Exercise) Steps() int {
	if e.Bilateral {
		return 2
	}
	return 1
}

// Catalog is an ordered list of exercises with unique identities.
type Catalog []Exercise

// Names returns the exercise names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

// BilateralCount returns how many exercises in the catalog are two-sided.
func (c Catalog) BilateralCount() int {
	n := 0
	for _, e := range c {
		if e.Bilateral {
			n++
		}
	}
	return n
}

// Validate checks that the catalog is non-empty, every name is non-blank and
// no two exercises share an identity.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.NewValidationError("catalog has no exercises").
			WithField("exercises").
			WithCause(errors.ErrCatalogInvalid)
	}

	seen := make(map[string]int, len(c))
	for i, e := range c {
		field := fmt.Sprintf("exercises[%d].name", i)
		key := e.Key()
		if key == "" {
			return errors.NewValidationError("exercise name cannot be empty").
				WithField(field).
				WithCause(errors.ErrCatalogInvalid)
		}
		if first, dup := seen[key]; dup {
			return errors.NewValidationError(fmt.Sprintf("duplicate of exercises[%d]", first)).
				WithField(field).
				WithValue(e.Name).
				WithCause(errors.ErrDuplicateExercise)
		}
		seen[key] = i
	}
	return nil
}

// Clone returns a copy that does not share the backing array.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		{Name: "90-90", Bilateral: true},
		{Name: "Toes Pose"},
		{Name: "Squat"},
		{Name: "Half Split", Bilateral: true},
		{Name: "Wide Leg Forward Fold"},
		{Name: "Thread the Needle", Bilateral: true},
		{Name: "Lunge", Bilateral: true},
		{Name: "Puppy Pose on Blocks"},
		{Name: "Wrist Stretch"},
		{Name: "Pigeon Pose", Bilateral: true},
		{Name: "Butterfly"},
		{Name: "Cross-Body Shoulder Stretch", Bilateral: true},
	}
}

// file is the on-disk YAML layout.
type file struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Parse decodes and validates a YAML catalog. Names are trimmed.
func Parse(data []byte) (Catalog, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.NewValidationError("cannot parse catalog").
			WithCause(fmt.Errorf("%w: %v", errors.ErrCatalogInvalid, err))
	}

	c := make(Catalog, len(f.Exercises))
	for i, e := range f.Exercises {
		c[i] = Exercise{Name: strings.TrimSpace(e.Name), Bilateral: e.Bilateral}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and validates the catalog file at path.
func Load(fs afero.Fs, path string) (Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// LoadOrDefault loads path, or returns the built-in catalog when path is empty.
func LoadOrDefault(fs afero.Fs, path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(fs, path)
}

// Marshal encodes the catalog in the file format accepted by Parse.
func Marshal(c Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file{Exercises: c}); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Write validates c and writes it to path, creating parent directories.
func Write(fs afero.Fs, path string, c Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}

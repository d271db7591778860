package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
)

// member is the wire shape of a family.Member. ParentID is a pointer so the
// root encodes as null.
type member struct {
	ID                 string  `json:"id" yaml:"id"`
	ParentID           *string `json:"parentId" yaml:"parentId"`
	Name               string  `json:"name" yaml:"name"`
	RegionalName       string  `json:"regionalName,omitempty" yaml:"regionalName,omitempty"`
	Relation           string  `json:"relationType" yaml:"relationType"`
	BirthDate          string  `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	DeathDate          string  `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	SpouseName         string  `json:"spouseName,omitempty" yaml:"spouseName,omitempty"`
	SpouseRegionalName string  `json:"spouseRegionalName,omitempty" yaml:"spouseRegionalName,omitempty"`
	PhotoURL           string  `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	Gender             string  `json:"gender" yaml:"gender"`
}

func fromMembers(ms family.Members) []member {
	out := make([]member, len(ms))
	for i, m := range ms {
		w := member{
			ID:                 m.ID,
			Name:               m.Name,
			RegionalName:       m.RegionalName,
			Relation:           m.Relation,
			BirthDate:          m.BirthDate,
			DeathDate:          m.DeathDate,
			SpouseName:         m.SpouseName,
			SpouseRegionalName: m.SpouseRegionalName,
			PhotoURL:           m.PhotoURL,
			Gender:             string(m.Gender),
		}
		if !m.IsRoot() {
			parent := m.ParentID
			w.ParentID = &parent
		}
		out[i] = w
	}
	return out
}

// WriteMembers encodes ms in the given format and writes it to w.
// The output can be re-imported with [ReadMembers].
func WriteMembers(w io.Writer, ms family.Members, format Format) error {
	wire := fromMembers(ms)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(wire); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(wire); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ExportFile writes ms to path, choosing the encoder by extension. The file
// is replaced atomically so an interrupted write never truncates an
// existing document.
func ExportFile(path string, ms family.Members) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		return WriteMembers(w, ms, format)
	})
}

// WriteFileAtomic writes path through a temporary file in the same
// directory that is renamed into place once write succeeds. On failure the
// destination is left untouched.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vamsha-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

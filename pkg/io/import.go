package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
)

// Format identifies a member document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported member document %q (want .json, .yaml or .yml)", path)
}

// ReadMembers decodes a member document from r.
//
// ReadMembers returns an error if the document is malformed, if any member
// has an invalid or duplicate identity, or if a gender tag is unknown.
// ReadMembers does not close r.
func ReadMembers(r io.Reader, format Format) (family.Members, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var wire []member
	switch format {
	case FormatJSON:
		wire, err = decodeJSON(data)
	case FormatYAML:
		wire, err = decodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}

	return toMembers(wire)
}

// ImportFile reads a member document at path, choosing the decoder by
// extension.
func ImportFile(path string) (family.Members, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ms, err := ReadMembers(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

type envelope struct {
	Members []member `json:"members" yaml:"members"`
}

func decodeJSON(data []byte) ([]member, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return env.Members, nil
	}
	var list []member
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeYAML(data []byte) ([]member, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.MappingNode {
		var env envelope
		if err := doc.Decode(&env); err != nil {
			return nil, err
		}
		return env.Members, nil
	}
	var list []member
	if err := doc.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func toMembers(wire []member) (family.Members, error) {
	out := make(family.Members, 0, len(wire))
	seen := make(map[string]bool, len(wire))
	for i, w := range wire {
		if err := errors.ValidateMemberID(w.ID); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		if seen[w.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate member id %q", w.ID)
		}
		seen[w.ID] = true

		gender, err := family.ParseGender(w.Gender)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "member %s", w.ID)
		}

		m := family.Member{
			ID:                 w.ID,
			Name:               w.Name,
			RegionalName:       w.RegionalName,
			Relation:           w.Relation,
			BirthDate:          w.BirthDate,
			DeathDate:          w.DeathDate,
			SpouseName:         w.SpouseName,
			SpouseRegionalName: w.SpouseRegionalName,
			PhotoURL:           w.PhotoURL,
			Gender:             gender,
		}
		if w.ParentID != nil {
			m.ParentID = *w.ParentID
		}
		out = append(out, m)
	}
	return out, nil
}

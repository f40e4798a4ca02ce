// File: cmd/input.go
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/geofill/geofill-cli/api/schemas"
)

// readStringMap reads a flat key/value document from path, or from stdin
// when path is "-". JSON and YAML are accepted; scalar values are
// stringified so a YAML zip code of 10001 still reads as "10001".
func readStringMap(path string, stdin io.Reader) (map[string]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		var expanded string
		expanded, err = homedir.Expand(path)
		if err == nil {
			path = expanded
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = jsonAPI.Unmarshal(data, &raw)
	default:
		// YAML is a superset of JSON.
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
		if err == io.EOF {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("%s: value of %q must be a scalar", path, k)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out, nil
}

func readProfile(path string, stdin io.Reader) (schemas.Profile, error) {
	m, err := readStringMap(path, stdin)
	if err != nil {
		return nil, err
	}
	return schemas.Profile(m), nil
}

// writeTo opens path for writing after ~ expansion. "-" or "" means w.
func writeTo(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to expand %q: %w", path, err)
	}
	f, err := os.Create(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", expanded, err)
	}
	return f, f.Close, nil
}

// Package settings loads provider attribute files and keeps a provider in
// step with them.
//
// A settings file holds the attribute set the host would store for one
// portal:
//
//	portal: 0
//	attributes:
//	  articleUrlStyle: "54:BlogStyle;-1:TitleStyle"
//	  redirectUrls: true
//	  startingArticleId: 100
//
// YAML (.yaml, .yml), JSON (.json) and JSON with comments (.jsonc) are
// accepted. Scalar values of any type are read as their string form.
package settings

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/types"
)

// ErrNoSettingsFile is returned by Find when a directory holds no settings file.
var ErrNoSettingsFile = errors.New("no settings file found")

// FileNames are the names Find looks for, in order.
var FileNames = []string{"settings.yaml", "settings.yml", "settings.jsonc", "settings.json"}

// document is the on-disk shape of a settings file.
type document struct {
	Portal     int            `yaml:"portal" json:"portal"`
	Attributes map[string]any `yaml:"attributes" json:"attributes"`
}

// Settings is a parsed settings file.
type Settings struct {
	Path       string
	Portal     types.PortalID
	Attributes map[string]string
	// Fingerprint identifies the attribute set; formatting and key order do
	// not change it.
	Fingerprint string
}

// Find returns the first settings file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoSettingsFile)
}

// Load reads and parses the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	settings, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	settings.Path = path
	return settings, nil
}

// Parse decodes settings data. ext selects the format and defaults to YAML.
func Parse(data []byte, ext string) (*Settings, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	attributes := make(map[string]string, len(doc.Attributes))
	for name, raw := range doc.Attributes {
		if raw == nil {
			continue
		}
		value, err := cast.ToStringE(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		attributes[name] = value
	}

	return &Settings{
		Portal:      types.PortalID(doc.Portal),
		Attributes:  attributes,
		Fingerprint: Fingerprint(types.PortalID(doc.Portal), attributes),
	}, nil
}

// Configuration builds the provider configuration the settings describe.
func (s *Settings) Configuration() (*options.Configuration, error) {
	return options.NewConfiguration(s.Attributes)
}

// Fingerprint hashes a portal's attribute set. Attribute names are compared
// case-insensitively, as the configuration reads them.
func Fingerprint(portal types.PortalID, attributes map[string]string) string {
	lines := make([]string, 0, len(attributes))
	for name, value := range attributes {
		lines = append(lines, strings.ToLower(name)+"="+strings.TrimSpace(value))
	}
	sort.Strings(lines)

	hasher := blake3.New()
	fmt.Fprintf(hasher, "portal=%d\n", portal)
	for _, line := range lines {
		hasher.Write([]byte(line))
		hasher.Write([]byte{'\n'})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// Marshal renders a portal's attribute set as a YAML settings file.
func Marshal(portal types.PortalID, attributes map[string]string) ([]byte, error) {
	doc := struct {
		Portal     int               `yaml:"portal"`
		Attributes map[string]string `yaml:"attributes"`
	}{Portal: int(portal), Attributes: attributes}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

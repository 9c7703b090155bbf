// Package updater implements the manifest-driven self-update mechanism.
//
// Releases carry a manifest.json describing every distributable module with
// its version, SHA-256 hash and type. Updating means diffing the remote
// manifest against the local one and replacing only the files that changed.
package updater

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ManifestFilename is the manifest file name both locally and in releases.
const ManifestFilename = "manifest.json"

// ModuleType classifies a distributable file.
type ModuleType string

const (
	TypeCore   ModuleType = "core"   // the main binary; replacing it needs a restart
	TypeModule ModuleType = "module" // hot-swappable feature module
	TypeSystem ModuleType = "system" // support tooling shipped alongside the binary
	TypeAsset  ModuleType = "asset"  // static data files
	TypeConfig ModuleType = "config" // configuration templates
)

// ErrInvalidManifest wraps schema validation failures.
var ErrInvalidManifest = errors.New("invalid manifest")

// ModuleInfo describes one distributable file.
type ModuleInfo struct {
	Version  string     `json:"version"`
	Hash     string     `json:"hash"` // SHA-256, lowercase hex
	Type     ModuleType `json:"type"`
	Size     int64      `json:"size"`
	Required bool       `json:"required"`
}

// Manifest lists every distributable module of a release.
type Manifest struct {
	Version   string                `json:"version"`
	Generated string                `json:"generated"` // RFC 3339
	Modules   map[string]ModuleInfo `json:"modules"`
}

// manifestSchema validates remote manifests before their contents drive
// file replacement.
const manifestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["version", "modules"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"generated": {"type": "string"},
		"modules": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["version", "hash", "type"],
				"properties": {
					"version": {"type": "string", "minLength": 1},
					"hash": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
					"type": {"enum": ["core", "module", "system", "asset", "config"]},
					"size": {"type": "integer", "minimum": 0},
					"required": {"type": "boolean"}
				}
			}
		}
	}
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(ManifestFilename, strings.NewReader(manifestSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(ManifestFilename)
}

// ParseManifest validates raw manifest JSON against the schema and decodes it.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.Modules == nil {
		m.Modules = map[string]ModuleInfo{}
	}
	return &m, nil
}

// LoadManifest reads the local manifest. A missing file yields an empty
// manifest so a fresh install updates everything.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Version: DefaultVersion, Modules: map[string]ModuleInfo{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ModuleNames returns the module names sorted for stable output.
func (m *Manifest) ModuleNames() []string {
	names := make([]string, 0, len(m.Modules))
	for name := range m.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashFile computes the SHA-256 of a file as lowercase hex.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// classifyModule infers the module type from a file name. The main binary
// is core; everything else is classified by extension.
func classifyModule(name string) ModuleType {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "taskdeck" {
		return TypeCore
	}
	switch filepath.Ext(name) {
	case ".toml", ".json":
		return TypeConfig
	case ".txt", ".md", ".png", ".ico":
		return TypeAsset
	case ".sh", ".bat":
		return TypeSystem
	default:
		return TypeModule
	}
}

// Generate builds a manifest for the files in dir. Used by the release
// tooling; hidden files, backups and the manifest itself are skipped.
func Generate(dir, version string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	m := &Manifest{
		Version:   version,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Modules:   map[string]ModuleInfo{},
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == ManifestFilename ||
			strings.HasPrefix(name, ".") || strings.HasSuffix(name, backupSuffix) {
			continue
		}

		path := filepath.Join(dir, name)
		hash, err := HashFile(path)
		if err != nil {
			return nil, err
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		typ := classifyModule(name)
		m.Modules[name] = ModuleInfo{
			Version:  version,
			Hash:     hash,
			Type:     typ,
			Size:     info.Size(),
			Required: typ == TypeCore,
		}
	}
	return m, nil
}

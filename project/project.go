package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "psai.toml"

// Project represents a PHP project: a root directory and the
// configuration found there.
type Project struct {
	RootDir    string
	ConfigFile string // Empty when no psai.toml was found
	Config     Config
}

// Config mirrors the contents of psai.toml.
type Config struct {
	Source SourceConfig `toml:"source"`
	Scan   ScanConfig   `toml:"scan"`
}

// SourceConfig selects the files that belong to the project.
type SourceConfig struct {
	Roots      []string `toml:"roots"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	Encoding   string   `toml:"encoding"`
}

// ScanConfig controls whole-project scans.
type ScanConfig struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir,omitempty"`
}

// DefaultConfig returns the configuration used when psai.toml is absent
// or leaves a key out.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Roots:      []string{"."},
			Extensions: []string{".php"},
			Exclude:    []string{".git", "vendor", "node_modules"},
			Encoding:   "utf-8",
		},
		Scan: ScanConfig{
			Cache: true,
		},
	}
}

// Load walks up from dir looking for psai.toml. Without one the project
// is rooted at dir and uses DefaultConfig.
func Load(dir string) (*Project, error) {
	if dir == "" {
		dir = "."
	}
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	configFile, found, err := findConfig(start)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Project{RootDir: start, Config: DefaultConfig()}, nil
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return &Project{
		RootDir:    filepath.Dir(configFile),
		ConfigFile: configFile,
		Config:     cfg,
	}, nil
}

// Init writes a psai.toml holding DefaultConfig into dir. It refuses to
// replace an existing file.
func Init(dir string) (string, error) {
	file := filepath.Join(dir, ConfigFileName)
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists", file)
		}
		return "", err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(DefaultConfig()); err != nil {
		return "", fmt.Errorf("write %s: %w", file, err)
	}
	return file, f.Close()
}

func findConfig(dir string) (string, bool, error) {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadConfig reads a psai.toml file on top of DefaultConfig.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(file, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: parse TOML: %w", file, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", file, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("scan.jobs must not be negative, got %d", c.Scan.Jobs)
	}
	if len(c.Source.Roots) == 0 {
		return errors.New("source.roots must name at least one directory")
	}
	for i, ext := range c.Source.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Source.Extensions[i] = "." + ext
		}
	}
	if _, err := decoderFor(c.Source.Encoding); err != nil {
		return err
	}
	return nil
}

// Workers returns the number of parallel jobs a scan should use.
func (c ScanConfig) Workers() int {
	if c.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Jobs
}

// CachePath returns the directory of the parse cache. An empty CacheDir
// selects psai below the user cache directory.
func (p *Project) CachePath() (string, error) {
	dir := p.Config.Scan.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locate cache directory: %w", err)
		}
		return filepath.Join(base, "psai"), nil
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.RootDir, dir)
	}
	return dir, nil
}

// Files returns all source files under the configured roots, sorted and
// without duplicates.
func (p *Project) Files() ([]string, error) {
	var files []string

	for _, root := range p.Config.Source.Roots {
		dir := root
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.RootDir, root)
		}
		err := filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p.Excluded(file) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !p.IsSource(file) {
				return nil
			}
			files = append(files, file)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// IsSource reports whether file has one of the configured extensions.
func (p *Project) IsSource(file string) bool {
	return slices.Contains(p.Config.Source.Extensions, filepath.Ext(file))
}

// Excluded reports whether file matches an exclude pattern, either by
// its base name or by its slash separated path relative to the root.
func (p *Project) Excluded(file string) bool {
	rel, err := filepath.Rel(p.RootDir, file)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, pattern := range p.Config.Source.Exclude {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ReadFile reads a source file and decodes it from the configured
// encoding into UTF-8.
func (p *Project) ReadFile(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return Decode(data, p.Config.Source.Encoding)
}

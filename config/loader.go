package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/vidscribe/logger"
)

// FileSystem abstracts the lookups the loader makes so tests can fake them.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem reads the local disk.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv exports the variables of a dotenv file into the process
// environment. Variables that are already set keep their value.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// envSections are the config sections settable as SECTION_KEY variables,
// e.g. WHISPER_MODEL or DEEPGRAM_API_KEY.
var envSections = []string{"logging", "media", "whisper", "deepgram", "pipeline", "observability"}

// envPrefix marks top-level keys, e.g. VIDSCRIBE_ENVIRONMENT.
const envPrefix = "VIDSCRIBE_"

// Resolver locates config.yml and the dotenv file.
type Resolver struct {
	FileSystem FileSystem
	// Dirs overrides the search directories, highest priority first.
	Dirs []string
}

// ResolvedFiles contains the resolved config and env file paths.
// An empty path means nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles keeps explicit paths from opts and searches for the rest.
func (r *Resolver) ResolveFiles(app string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	dirs := r.Dirs
	if len(dirs) == 0 {
		dirs = searchDirs(app)
	}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(dirs, "config.yml")
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(dirs, ".env."+app, ".env")
	}
	return files
}

// first returns the first existing dir/name pair. Directories take
// priority over names.
func (r *Resolver) first(dirs []string, names ...string) string {
	for _, dir := range dirs {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if r.FileSystem.Exists(p) {
				return p
			}
		}
	}
	return ""
}

// searchDirs lists where a checkout or an installed binary keeps its files:
// the command directory of the repo, a config directory, the working
// directory and finally the user config directory.
func searchDirs(app string) []string {
	dirs := []string{filepath.Join("cmd", app), "config", "."}
	if home, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, app))
	}
	return dirs
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig unmarshals config.yml into cfg and overlays the environment.
// The dotenv file is exported first so its values count as environment.
// A missing or unreadable file is logged and skipped.
func LoadConfig(app string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(app, lc)
	log := logger.Get("config")
	v := viper.New()

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("config file unreadable", logger.MergeWithError(logger.Fields(logger.FieldPath, files.ConfigFile), err))
		} else {
			log.Debug("config file loaded", logger.Fields(logger.FieldPath, files.ConfigFile))
		}
	}
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("env file unreadable", logger.MergeWithError(logger.Fields(logger.FieldPath, files.EnvFile), err))
		}
	}
	overlayEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode %s config: %w", app, err)
	}
	return nil
}

// overlayEnv sets every recognised variable on v. Values set this way
// take precedence over the config file.
func overlayEnv(v *viper.Viper, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key, ok := envKey(name); ok {
			v.Set(key, value)
		}
	}
}

// envKey maps an environment variable name onto its dotted config key.
// Only the first underscore after a section name splits, so
// DEEPGRAM_API_KEY becomes deepgram.api_key.
func envKey(name string) (string, bool) {
	lower := strings.ToLower(name)
	if rest, ok := strings.CutPrefix(lower, strings.ToLower(envPrefix)); ok && rest != "" {
		return rest, true
	}
	for _, section := range envSections {
		if rest, ok := strings.CutPrefix(lower, section+"_"); ok && rest != "" {
			return section + "." + rest, true
		}
	}
	return "", false
}

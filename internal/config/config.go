package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// APIKey authenticates requests to the episode source.
	// The COMPENDIUM_API_KEY environment variable overrides the file value.
	APIKey string `json:"api_key,omitempty"`

	// APIBaseURL is the episode source endpoint. Defaults to the YouTube
	// Data API host; tests point it at a local server.
	APIBaseURL string `json:"api_base_url,omitempty"`

	// PlaylistIDs are the source playlists aggregated into the episode list.
	PlaylistIDs []string `json:"playlist_ids,omitempty"`

	// CompletePlaylistIDs are the alternate "complete series" playlists,
	// selected with ?playlist=complete.
	CompletePlaylistIDs []string `json:"complete_playlist_ids,omitempty"`

	// TitleTrimSuffix is stripped from episode titles when present.
	TitleTrimSuffix string `json:"title_trim_suffix,omitempty"`

	// NotesMaxChars is the maximum character count for raw note text.
	NotesMaxChars int `json:"notes_max_chars"`

	// EpisodeCacheTTLSecs is the episode-list cache lifetime.
	EpisodeCacheTTLSecs int `json:"episode_cache_ttl_secs,omitempty"`

	// DerivedCacheTTLSecs is the derived-notes cache lifetime. The value can
	// be long: the cache is invalidated on every accepted write.
	DerivedCacheTTLSecs int `json:"derived_cache_ttl_secs,omitempty"`

	// LockLeaseSecs is the write-lock lease. Expiry is a safety net against
	// a crashed holder; normal operation releases explicitly.
	LockLeaseSecs int `json:"lock_lease_secs,omitempty"`

	// LockRetrySecs is the sleep between write-lock acquisition attempts.
	LockRetrySecs int `json:"lock_retry_secs,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// LogFile receives the JSON log stream alongside text on stderr.
	LogFile string `json:"log_file,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:          "https://www.googleapis.com",
		NotesMaxChars:       200,
		EpisodeCacheTTLSecs: 1800,        // 30 minutes
		DerivedCacheTTLSecs: 7 * 86400,   // 1 week
		LockLeaseSecs:       5,
		LockRetrySecs:       1,
		LogLevel:            "info",
	}
}

// Load loads configuration from baseDir/config.json, merged over defaults.
// Returns default config if the file doesn't exist. The baseDir parameter
// allows tests to use t.TempDir() instead of ~/.compendium.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	if key := strings.TrimSpace(os.Getenv("COMPENDIUM_API_KEY")); key != "" {
		merged.APIKey = key
	}
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.APIKey = overlayString(base.APIKey, overlay.APIKey)
	result.APIBaseURL = overlayString(base.APIBaseURL, overlay.APIBaseURL)
	result.TitleTrimSuffix = overlayString(base.TitleTrimSuffix, overlay.TitleTrimSuffix)
	result.LogFile = overlayString(base.LogFile, overlay.LogFile)
	result.LogLevel = overlayString(base.LogLevel, overlay.LogLevel)

	result.NotesMaxChars = overlayInt(base.NotesMaxChars, overlay.NotesMaxChars)
	result.EpisodeCacheTTLSecs = overlayInt(base.EpisodeCacheTTLSecs, overlay.EpisodeCacheTTLSecs)
	result.DerivedCacheTTLSecs = overlayInt(base.DerivedCacheTTLSecs, overlay.DerivedCacheTTLSecs)
	result.LockLeaseSecs = overlayInt(base.LockLeaseSecs, overlay.LockLeaseSecs)
	result.LockRetrySecs = overlayInt(base.LockRetrySecs, overlay.LockRetrySecs)
	result.DBMaxOpenConns = overlayInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns)
	result.DBMaxIdleConns = overlayInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns)

	result.PlaylistIDs = mergeStringSlice(base.PlaylistIDs, overlay.PlaylistIDs)
	result.CompletePlaylistIDs = mergeStringSlice(base.CompletePlaylistIDs, overlay.CompletePlaylistIDs)

	return result
}

func overlayString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func overlayInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

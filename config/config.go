package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL        = "http://127.0.0.1:8000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogFile        = "inboxagent.log"
	DefaultStyle          = "polished"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Settings are the user editable options stored in the config file.
type Settings struct {
	BaseURL        string        `yaml:"baseURL"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	LogFile        string        `yaml:"logFile"`
	DefaultStyle   string        `yaml:"defaultStyle"`
}

// Defaults returns the settings used when no config file exists yet.
func Defaults() Settings {
	return Settings{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		LogFile:        DefaultLogFile,
		DefaultStyle:   DefaultStyle,
	}
}

// Validate checks that the settings can be used to reach the analysis service.
func (s Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: baseURL %q must be an http(s) URL", ErrInvalidConfig, s.BaseURL)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("%w: requestTimeout must not be negative", ErrInvalidConfig)
	}
	switch s.DefaultStyle {
	case "friendly", "polished", "short":
	default:
		return fmt.Errorf("%w: defaultStyle %q must be friendly, polished or short", ErrInvalidConfig, s.DefaultStyle)
	}
	return nil
}

// Manager handles loading, saving, and accessing the settings file.
// saved mirrors the file; settings is what this run uses, including overrides.
type Manager struct {
	filePath string
	saved    Settings
	settings Settings
	mu       sync.RWMutex
}

// NewManager creates a manager backed by filePath, writing defaults if the file is missing.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{
		filePath: filePath,
		saved:    Defaults(),
		settings: Defaults(),
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the settings file. Fields missing from the file keep their defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.saved = Defaults()
			m.settings = m.saved
			return m.save()
		}
		return fmt.Errorf("read config %s: %w", m.filePath, err)
	}

	settings := Defaults()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parse config %s: %w", m.filePath, err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", m.filePath, err)
	}
	m.saved = settings
	m.settings = settings
	return nil
}

// save writes the file-backed settings, never the overrides. Callers must hold the lock.
func (m *Manager) save() error {
	data, err := yaml.Marshal(m.saved)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Override applies non-zero fields of o for this run only; the file is left alone.
func (m *Manager) Override(o Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.settings
	if o.BaseURL != "" {
		s.BaseURL = o.BaseURL
	}
	if o.RequestTimeout != 0 {
		s.RequestTimeout = o.RequestTimeout
	}
	if o.LogFile != "" {
		s.LogFile = o.LogFile
	}
	if o.DefaultStyle != "" {
		s.DefaultStyle = o.DefaultStyle
	}
	if err := s.Validate(); err != nil {
		return err
	}
	m.settings = s
	return nil
}

// SetBaseURL changes the service address and saves it. Other overrides stay in memory.
func (m *Manager) SetBaseURL(baseURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.saved
	s.BaseURL = baseURL
	if err := s.Validate(); err != nil {
		return err
	}
	prev := m.saved
	m.saved = s
	if err := m.save(); err != nil {
		m.saved = prev
		return err
	}
	m.settings.BaseURL = baseURL
	return nil
}

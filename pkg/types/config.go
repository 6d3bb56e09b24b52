package types

import "errors"

// Config holds backend selection and parameters for opening a Store.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataFile  string `json:"data_file" yaml:"data_file"`
	Listen    string `json:"listen" yaml:"listen"`
	StaticDir string `json:"static_dir" yaml:"static_dir"`
}

// Supported backend names.
const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataFileEmpty  = errors.New("data file must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSONFile: true,
	BackendSQLite:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DataFile == "" {
		return ErrDataFileEmpty
	}
	return nil
}

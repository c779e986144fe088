package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultStorePath is where the installer writes connection parameters,
// relative to the working directory of the service.
const DefaultStorePath = "prizepacket.env"

// Params are the connection parameters verified and persisted by the
// installer. Everything except the password is required.
type Params struct {
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string
	AppURL     string
}

// Store is the persisted-configuration capability. The presence of a written
// store is the system's sole installed marker; the installer refuses to run
// again while one exists.
type Store interface {
	// Exists reports whether configuration has been persisted.
	Exists() bool
	// Write persists the parameters durably. Partial writes are not
	// permitted; on error the store must be treated as absent.
	Write(Params) error
	// Load merges the persisted parameters into the process environment so
	// envconfig.Process picks them up.
	Load() error
	// Path names the backing artifact for operator-facing messages.
	Path() string
}

// FileStore persists parameters as an env-format file via godotenv.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path, or the default
// path when empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultStorePath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileStore) Write(p Params) error {
	values := map[string]string{
		"DB_HOST":     p.DBHost,
		"DB_NAME":     p.DBName,
		"DB_USER":     p.DBUser,
		"DB_PASSWORD": p.DBPassword,
		"APP_URL":     p.AppURL,
	}
	return godotenv.Write(values, s.path)
}

func (s *FileStore) Load() error {
	return godotenv.Load(s.path)
}

func (s *FileStore) Path() string {
	return s.path
}

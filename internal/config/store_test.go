package config

import (
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreWriteAndExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prizepacket.env")
	store := NewFileStore(path)

	assert.False(t, store.Exists())

	err := store.Write(Params{
		DBHost:     "127.0.0.1",
		DBName:     "prizepacket",
		DBUser:     "app",
		DBPassword: "s3cret",
		AppURL:     "https://example.com/prizepacket",
	})
	require.NoError(t, err)
	assert.True(t, store.Exists())

	// the persisted artifact is a plain env file any component can load
	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", values["DB_HOST"])
	assert.Equal(t, "prizepacket", values["DB_NAME"])
	assert.Equal(t, "app", values["DB_USER"])
	assert.Equal(t, "s3cret", values["DB_PASSWORD"])
	assert.Equal(t, "https://example.com/prizepacket", values["APP_URL"])
}

func TestFileStoreEmptyPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prizepacket.env")
	store := NewFileStore(path)

	require.NoError(t, store.Write(Params{
		DBHost: "db", DBName: "p", DBUser: "u", AppURL: "http://x",
	}))

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "", values["DB_PASSWORD"])
}

func TestNewFileStoreDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultStorePath, NewFileStore("").Path())
	assert.Equal(t, "/etc/pp.env", NewFileStore("/etc/pp.env").Path())
}

func TestFileStoreWriteUnwritableDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "deep", "prizepacket.env"))
	err := store.Write(Params{DBHost: "db", DBName: "p", DBUser: "u", AppURL: "http://x"})
	assert.Error(t, err)
	assert.False(t, store.Exists())
}

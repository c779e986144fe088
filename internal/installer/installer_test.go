package installer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/config"
)

// fakeStore satisfies config.Store without touching the filesystem.
type fakeStore struct {
	exists   bool
	written  *config.Params
	writeErr error
}

func (s *fakeStore) Exists() bool { return s.exists }

func (s *fakeStore) Write(p config.Params) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = &p
	s.exists = true
	return nil
}

func (s *fakeStore) Load() error  { return nil }
func (s *fakeStore) Path() string { return "fake/prizepacket.env" }

func validParams() config.Params {
	return config.Params{
		DBHost: "127.0.0.1",
		DBName: "prizepacket",
		DBUser: "app",
		AppURL: "https://example.com/prizepacket/",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validParams()))

	// password is the only optional field
	p := validParams()
	p.DBPassword = ""
	assert.NoError(t, Validate(p))

	p = config.Params{DBHost: " ", DBName: "", DBUser: "app", AppURL: ""}
	err := Validate(p)
	require.Error(t, err)

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"db_host", "db_name", "app_url"}, validation.Missing)
}

func TestConnectionFailureLoopbackHint(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := ConnectionFailure("localhost", cause)
	var connection *apperrors.ConnectionError
	require.ErrorAs(t, err, &connection)
	assert.Contains(t, connection.Hint, "127.0.0.1")
	assert.ErrorIs(t, err, cause)

	// only the loopback hostname alias gets the hint
	err = ConnectionFailure("db.internal", cause)
	require.ErrorAs(t, err, &connection)
	assert.Empty(t, connection.Hint)

	err = ConnectionFailure("127.0.0.1", cause)
	require.ErrorAs(t, err, &connection)
	assert.Empty(t, connection.Hint)
}

func TestRunRefusesWhenConfigExists(t *testing.T) {
	store := &fakeStore{exists: true}
	inst := New(store)

	report, err := inst.Run(context.Background(), validParams())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInstalled)

	// the guard fires before any validation or connection work
	assert.Nil(t, store.written)
}

func TestRunValidatesBeforeConnecting(t *testing.T) {
	store := &fakeStore{}
	inst := New(store)
	inst.probe = nil // reaching the probe would panic; validation must stop first

	report, err := inst.Run(context.Background(), config.Params{DBHost: "localhost"})
	assert.Nil(t, report)

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"db_name", "db_user", "app_url"}, validation.Missing)
	assert.Nil(t, store.written)
}

func TestSchemaObjects(t *testing.T) {
	require.Len(t, SchemaObjects, 7)

	// dependency order: referenced tables before referencing ones
	names := make([]string, 0, len(SchemaObjects))
	for _, obj := range SchemaObjects {
		names = append(names, obj.Name)
	}
	assert.Equal(t, []string{
		"settings", "users", "service_credentials", "inventory", "campaigns", "entrants", "winners",
	}, names)

	for _, obj := range SchemaObjects {
		stmt := strings.TrimSpace(obj.Statement)
		// every object is independently idempotent and single-statement
		assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS"), obj.Name)
		assert.NotContains(t, stmt, ";", obj.Name)
	}
}

func TestSchemaEntrantDedupIndex(t *testing.T) {
	var entrants string
	for _, obj := range SchemaObjects {
		if obj.Name == "entrants" {
			entrants = obj.Statement
		}
	}
	require.NotEmpty(t, entrants)
	assert.Contains(t, entrants, "UNIQUE (campaign_id, platform, platform_user_id)")
}

package installer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/config"
	"github.com/prizepacket/prizepacket/internal/database"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// State names how far an install run has progressed. Transitions are
// strictly forward; there is no rollback across steps, so a run that fails
// midway leaves the target at the last reached state and the step-1 guard
// then blocks further runs until the operator removes the config artifact.
type State string

const (
	StateUninstalled        State = "uninstalled"
	StateConnectionVerified State = "connection_verified"
	StateConfigPersisted    State = "config_persisted"
	StateSchemaApplied      State = "schema_applied"
	StateAdminSeeded        State = "admin_seeded"
	StateInstalled          State = "installed"
)

// AdminUsername is the fixed username of the seeded operator identity.
const AdminUsername = "admin"

// initialAdminPassword is the documented initial secret. The success report
// tells the operator to change it immediately.
const initialAdminPassword = "password"

// Report is the success payload of an install run.
type Report struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	State    State  `json:"state"`
}

// Installer provisions a bare target: it verifies the storage connection,
// persists the connection parameters, applies the schema and seeds the
// first operator identity. The step-1 guard makes it one-shot.
type Installer struct {
	store        config.Store
	probe        func(context.Context, config.Params) (*sqlx.DB, error)
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
}

// New creates an installer over the given configuration store.
func New(store config.Store) *Installer {
	return &Installer{
		store:        store,
		probe:        database.Probe,
		userRepo:     repository.NewUserRepository(),
		settingsRepo: repository.NewSettingsRepository(),
	}
}

// Validate checks the required install inputs. The database password is the
// only optional field.
func Validate(p config.Params) error {
	missing := []string{}
	if strings.TrimSpace(p.DBHost) == "" {
		missing = append(missing, "db_host")
	}
	if strings.TrimSpace(p.DBName) == "" {
		missing = append(missing, "db_name")
	}
	if strings.TrimSpace(p.DBUser) == "" {
		missing = append(missing, "db_user")
	}
	if strings.TrimSpace(p.AppURL) == "" {
		missing = append(missing, "app_url")
	}
	if len(missing) > 0 {
		return &apperrors.ValidationError{Missing: missing}
	}
	return nil
}

// ConnectionFailure wraps a failed probe. When the host is the loopback
// hostname alias the error carries a remediation hint, because a resolver
// or socket misconfiguration there is common and the numeric loopback
// address usually works. The hint is advice for the operator; the installer
// never retries with the alternate host itself.
func ConnectionFailure(host string, err error) error {
	hint := ""
	if host == "localhost" {
		hint = "try '127.0.0.1' instead of 'localhost'"
	}
	return &apperrors.ConnectionError{Hint: hint, Err: err}
}

// Run executes the provisioning sequence. No step is transactional across
// the whole sequence.
func (i *Installer) Run(ctx context.Context, p config.Params) (*Report, error) {
	state := StateUninstalled

	// Step 1: the sole re-entrancy guard
	if i.store.Exists() {
		return nil, apperrors.ErrAlreadyInstalled
	}

	// Step 2: validate inputs
	if err := Validate(p); err != nil {
		return nil, i.halt(state, err)
	}
	p.AppURL = strings.TrimRight(strings.TrimSpace(p.AppURL), "/")

	// Step 3: verify the connection
	db, err := i.probe(ctx, p)
	if err != nil {
		return nil, i.halt(state, ConnectionFailure(p.DBHost, err))
	}
	defer db.Close()
	state = StateConnectionVerified

	// Step 4: persist configuration; fatal on failure, no schema work
	if err := i.store.Write(p); err != nil {
		return nil, i.halt(state, &apperrors.ConfigWriteError{Err: err})
	}
	state = StateConfigPersisted

	// Step 5: apply the schema one object at a time
	for _, obj := range SchemaObjects {
		if _, err := db.ExecContext(ctx, obj.Statement); err != nil {
			return nil, i.halt(state, &apperrors.SchemaError{Object: obj.Name, Err: err})
		}
	}
	state = StateSchemaApplied

	// Step 6: seed the admin identity if absent
	exists, err := i.userRepo.UsernameExists(db, AdminUsername)
	if err != nil {
		return nil, i.halt(state, err)
	}
	if !exists {
		hash, err := bcrypt.GenerateFromPassword([]byte(initialAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, i.halt(state, fmt.Errorf("hash admin password: %w", err))
		}
		if _, err := i.userRepo.Create(db, AdminUsername, string(hash)); err != nil {
			return nil, i.halt(state, err)
		}
	}
	// Fetch the row either way; a pre-existing admin keeps its id.
	admin, err := i.userRepo.GetByUsername(db, AdminUsername)
	if err != nil {
		return nil, i.halt(state, err)
	}
	state = StateAdminSeeded

	// Step 7: record install metadata and report
	if err := i.settingsRepo.Set(db, "admin_user_id", strconv.FormatInt(admin.ID, 10)); err != nil {
		return nil, i.halt(state, err)
	}
	if err := i.settingsRepo.Set(db, "app_url", p.AppURL); err != nil {
		return nil, i.halt(state, err)
	}
	if err := i.settingsRepo.Set(db, "installed_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, i.halt(state, err)
	}
	state = StateInstalled

	return &Report{
		Username: AdminUsername,
		State:    state,
		Message: fmt.Sprintf(
			"Installation successful. Default user: %s / %s. Change this password immediately "+
				"and remove install-time artifacts. To reinstall, delete %q first.",
			AdminUsername, initialAdminPassword, i.store.Path()),
	}, nil
}

// halt logs where the run stopped and passes the cause through. Partial
// installs are not repaired automatically; the log line plus the config
// artifact tell the operator what to clean up.
func (i *Installer) halt(state State, err error) error {
	log.Printf("install halted at state %s: %v", state, err)
	return err
}

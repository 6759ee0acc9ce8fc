// Package cloudsync simulates a remote drive synchronization of the journal.
// There is no real network. Connect and Sync suspend for a short simulated
// delay and a completed sync mirrors the payload into the key-value store
// under the backup_data key, so a restore path exists even without a remote.
package cloudsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/selah-app/selah/pkg/db"
)

// BackupDataKey is the key-value store key mirroring the last synced payload.
const BackupDataKey = "backup_data"

// ErrNotConnected is returned by Sync before a successful Connect.
var ErrNotConnected = errors.New("not connected to cloud sync")

// ErrEmptyEmail is returned by Connect when no account email is set.
var ErrEmptyEmail = errors.New("cloud sync requires an account email")

// Client is a simulated cloud sync session for one device. Each client gets
// a fresh device id so concurrent devices can be told apart in logs.
type Client struct {
	email     string
	deviceID  uuid.UUID
	conn      *sql.DB
	log       zerolog.Logger
	delay     time.Duration
	now       func() time.Time
	connected bool
	lastSync  time.Time
}

// NewClient returns a disconnected client for the given account email.
func NewClient(email string, conn *sql.DB, log zerolog.Logger) *Client {
	return &Client{
		email:    email,
		deviceID: uuid.New(),
		conn:     conn,
		log:      log,
		delay:    1500 * time.Millisecond,
		now:      time.Now,
	}
}

// SetDelay overrides the simulated network delay.
func (c *Client) SetDelay(d time.Duration) { c.delay = d }

// DeviceID returns this client's device identifier.
func (c *Client) DeviceID() uuid.UUID { return c.deviceID }

// Connected reports whether Connect has completed successfully.
func (c *Client) Connected() bool { return c.connected }

// LastSync returns the completion time of the last successful Sync, or the
// zero time if no sync has completed.
func (c *Client) LastSync() time.Time { return c.lastSync }

// Connect establishes the simulated session. The delay stands in for the
// remote handshake; the work itself is not cancellable once started, ctx is
// only checked before it begins.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.email == "" {
		return ErrEmptyEmail
	}

	c.log.Info().Str("email", c.email).Stringer("device", c.deviceID).Msg("connecting to cloud sync")
	time.Sleep(c.delay)

	c.connected = true
	return nil
}

// Sync uploads payload to the simulated remote and mirrors it into the
// key-value store under backup_data. It records the completion time.
func (c *Client) Sync(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.connected {
		return ErrNotConnected
	}

	time.Sleep(c.delay)

	if err := db.Put(ctx, c.conn, BackupDataKey, string(payload)); err != nil {
		return fmt.Errorf("failed to mirror sync payload: %w", err)
	}

	c.lastSync = c.now()
	c.log.Info().
		Str("email", c.email).
		Stringer("device", c.deviceID).
		Int("bytes", len(payload)).
		Time("lastSync", c.lastSync).
		Msg("sync completed")
	return nil
}

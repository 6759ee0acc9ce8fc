package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/selah-app/selah/pkg/db"
)

// Persisted store keys. Each key holds one JSON-serialized collection,
// rewritten in full on every mutation.
const (
	KeyMeditations = "meditations"
	KeySermons     = "sermons"
	KeyFavorites   = "meditation_favorites"
	KeyPinned      = "meditation_pinned"
)

// Store is the single owner of the application's collections. Views read
// snapshots through its accessors; every mutation goes through its methods,
// which recompute the collection in memory and overwrite the persisted copy.
type Store struct {
	conn *sql.DB

	meditations []Meditation
	sermons     []Sermon
	favorites   []int64
	pinned      []int64

	now func() time.Time
}

// Open loads the collections from conn. Missing keys fall back to the built-in
// sample data (first-run experience); malformed stored JSON is an error — the
// store never silently discards data it cannot read.
func Open(ctx context.Context, conn *sql.DB) (*Store, error) {
	s := &Store{conn: conn, now: time.Now}

	found, err := loadKey(ctx, conn, KeyMeditations, &s.meditations)
	if err != nil {
		return nil, err
	}
	if !found {
		s.meditations = SampleMeditations()
	}

	found, err = loadKey(ctx, conn, KeySermons, &s.sermons)
	if err != nil {
		return nil, err
	}
	if !found {
		s.sermons = SampleSermons()
	}

	if _, err := loadKey(ctx, conn, KeyFavorites, &s.favorites); err != nil {
		return nil, err
	}
	if _, err := loadKey(ctx, conn, KeyPinned, &s.pinned); err != nil {
		return nil, err
	}

	return s, nil
}

func loadKey(ctx context.Context, conn *sql.DB, key string, dest interface{}) (bool, error) {
	raw, found, err := db.Get(ctx, conn, key)
	if err != nil {
		return false, fmt.Errorf("failed to load '%s': %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("stored '%s' is not valid JSON: %w", key, err)
	}
	return true, nil
}

func (s *Store) persist(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize '%s': %w", key, err)
	}
	if err := db.Put(ctx, s.conn, key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist '%s': %w", key, err)
	}
	return nil
}

// Meditations returns a snapshot of the meditation collection in stored order.
func (s *Store) Meditations() []Meditation {
	out := make([]Meditation, len(s.meditations))
	copy(out, s.meditations)
	return out
}

// Sermons returns a snapshot of the sermon collection in stored order.
func (s *Store) Sermons() []Sermon {
	out := make([]Sermon, len(s.sermons))
	copy(out, s.sermons)
	return out
}

// GetMeditation looks a meditation up by id.
func (s *Store) GetMeditation(id int64) (Meditation, error) {
	for _, m := range s.meditations {
		if m.ID == id {
			return m, nil
		}
	}
	return Meditation{}, ErrMeditationNotFound
}

// GetSermon looks a sermon up by id.
func (s *Store) GetSermon(id int64) (Sermon, error) {
	for _, sm := range s.sermons {
		if sm.ID == id {
			return sm, nil
		}
	}
	return Sermon{}, ErrSermonNotFound
}

// nextID generates a creation-timestamp id, bumping on collision so ids stay
// unique within the collection.
func nextID(taken map[int64]bool, now time.Time) int64 {
	id := now.UnixMilli()
	for taken[id] {
		id++
	}
	return id
}

func (s *Store) meditationIDs() map[int64]bool {
	ids := make(map[int64]bool, len(s.meditations))
	for _, m := range s.meditations {
		ids[m.ID] = true
	}
	return ids
}

func (s *Store) sermonIDs() map[int64]bool {
	ids := make(map[int64]bool, len(s.sermons))
	for _, sm := range s.sermons {
		ids[sm.ID] = true
	}
	return ids
}

// AddMeditation validates m, assigns an id and default date, appends it and
// rewrites the persisted collection.
func (s *Store) AddMeditation(ctx context.Context, m Meditation) (Meditation, error) {
	if err := m.Validate(); err != nil {
		return Meditation{}, err
	}

	if m.ID == 0 {
		m.ID = nextID(s.meditationIDs(), s.now())
	}
	if m.Date == "" {
		m.Date = isoDay(s.now())
	}
	if m.Color == "" {
		m.Color = "blue"
	}
	if m.Time == "" {
		m.Time = TimeMorning
	}

	s.meditations = append(s.meditations, m)
	if err := s.persist(ctx, KeyMeditations, s.meditations); err != nil {
		return Meditation{}, err
	}
	return m, nil
}

// UpdateMeditation replaces the stored meditation with the same id. The id is
// immutable; everything else comes from m.
func (s *Store) UpdateMeditation(ctx context.Context, m Meditation) (Meditation, error) {
	if err := m.Validate(); err != nil {
		return Meditation{}, err
	}

	for i := range s.meditations {
		if s.meditations[i].ID == m.ID {
			s.meditations[i] = m
			if err := s.persist(ctx, KeyMeditations, s.meditations); err != nil {
				return Meditation{}, err
			}
			return m, nil
		}
	}
	return Meditation{}, ErrMeditationNotFound
}

// DeleteMeditation removes the meditation with the given id. Favorites and
// pinned entries referencing it are left in place; readers filter dangling ids.
func (s *Store) DeleteMeditation(ctx context.Context, id int64) error {
	for i := range s.meditations {
		if s.meditations[i].ID == id {
			s.meditations = append(s.meditations[:i], s.meditations[i+1:]...)
			return s.persist(ctx, KeyMeditations, s.meditations)
		}
	}
	return ErrMeditationNotFound
}

// AddSermon validates sm, assigns an id, stamps date and timestamps, appends
// it and rewrites the persisted collection.
func (s *Store) AddSermon(ctx context.Context, sm Sermon) (Sermon, error) {
	if err := sm.Validate(); err != nil {
		return Sermon{}, err
	}

	if sm.ID == 0 {
		sm.ID = nextID(s.sermonIDs(), s.now())
	}
	if sm.Date == "" {
		sm.Date = isoDay(s.now())
	}
	if sm.Status == "" {
		sm.Status = StatusPreparing
	}
	stamp := s.now().UTC().Format(time.RFC3339)
	if sm.CreatedAt == "" {
		sm.CreatedAt = stamp
	}
	sm.UpdatedAt = stamp

	s.sermons = append(s.sermons, sm)
	if err := s.persist(ctx, KeySermons, s.sermons); err != nil {
		return Sermon{}, err
	}
	return sm, nil
}

// UpdateSermon replaces the stored sermon with the same id, preserving its
// creation timestamp and restamping UpdatedAt.
func (s *Store) UpdateSermon(ctx context.Context, sm Sermon) (Sermon, error) {
	if err := sm.Validate(); err != nil {
		return Sermon{}, err
	}

	for i := range s.sermons {
		if s.sermons[i].ID == sm.ID {
			if sm.CreatedAt == "" {
				sm.CreatedAt = s.sermons[i].CreatedAt
			}
			sm.UpdatedAt = s.now().UTC().Format(time.RFC3339)
			s.sermons[i] = sm
			if err := s.persist(ctx, KeySermons, s.sermons); err != nil {
				return Sermon{}, err
			}
			return sm, nil
		}
	}
	return Sermon{}, ErrSermonNotFound
}

// DeleteSermon removes the sermon with the given id.
func (s *Store) DeleteSermon(ctx context.Context, id int64) error {
	for i := range s.sermons {
		if s.sermons[i].ID == id {
			s.sermons = append(s.sermons[:i], s.sermons[i+1:]...)
			return s.persist(ctx, KeySermons, s.sermons)
		}
	}
	return ErrSermonNotFound
}

// AppendImported appends imported records to the existing collections and
// rewrites both persisted keys. Duplicate ids across the import and existing
// data are tolerated and appear as separate entries.
func (s *Store) AppendImported(ctx context.Context, meditations []Meditation, sermons []Sermon) error {
	if len(meditations) > 0 {
		s.meditations = append(s.meditations, meditations...)
		if err := s.persist(ctx, KeyMeditations, s.meditations); err != nil {
			return err
		}
	}
	if len(sermons) > 0 {
		s.sermons = append(s.sermons, sermons...)
		if err := s.persist(ctx, KeySermons, s.sermons); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAll swaps in fully restored collections, e.g. from a backup snapshot,
// and rewrites both persisted keys.
func (s *Store) ReplaceAll(ctx context.Context, meditations []Meditation, sermons []Sermon) error {
	s.meditations = meditations
	s.sermons = sermons
	if err := s.persist(ctx, KeyMeditations, s.meditations); err != nil {
		return err
	}
	return s.persist(ctx, KeySermons, s.sermons)
}

// Favorites returns the raw favorite id set, dangling ids included.
func (s *Store) Favorites() []int64 {
	out := make([]int64, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// PinnedIDs returns the raw pinned id set, dangling ids included.
func (s *Store) PinnedIDs() []int64 {
	out := make([]int64, len(s.pinned))
	copy(out, s.pinned)
	return out
}

// IsFavorite reports whether the meditation id is in the favorites set.
func (s *Store) IsFavorite(id int64) bool {
	return containsID(s.favorites, id)
}

// IsPinned reports whether the meditation is pinned, either through its own
// pinned flag or through the separate pinned set.
func (s *Store) IsPinned(id int64) bool {
	if containsID(s.pinned, id) {
		return true
	}
	m, err := s.GetMeditation(id)
	return err == nil && m.Pinned
}

// ToggleFavorite flips the favorite state of id and persists the set. It
// returns the new state. Toggling twice restores the original state.
func (s *Store) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	s.favorites, _ = toggleID(s.favorites, id)
	if err := s.persist(ctx, KeyFavorites, s.favorites); err != nil {
		return false, err
	}
	return containsID(s.favorites, id), nil
}

// TogglePin flips the pinned-set state of id and persists the set.
func (s *Store) TogglePin(ctx context.Context, id int64) (bool, error) {
	s.pinned, _ = toggleID(s.pinned, id)
	if err := s.persist(ctx, KeyPinned, s.pinned); err != nil {
		return false, err
	}
	return containsID(s.pinned, id), nil
}

// FavoriteMeditations returns the favorited meditations that still exist,
// filtering out dangling ids.
func (s *Store) FavoriteMeditations() []Meditation {
	var out []Meditation
	for _, m := range s.meditations {
		if containsID(s.favorites, m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// toggleID removes id if present, appends it otherwise. The bool reports
// whether the id is present after the toggle.
func toggleID(ids []int64, id int64) ([]int64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

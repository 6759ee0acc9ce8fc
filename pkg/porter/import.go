package porter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/selah-app/selah/pkg/journal"
)

var (
	// ErrInvalidJSON means the uploaded document could not be parsed at all.
	ErrInvalidJSON = errors.New("le fichier n'est pas un JSON valide")
	// ErrNothingToImport means the parsed payload held no usable records.
	ErrNothingToImport = errors.New("aucune donnée valide trouvée")
)

// Preview is the result of parsing and validating an uploaded document,
// shown to the user before anything is written.
type Preview struct {
	Meditations []journal.Meditation
	Sermons     []journal.Sermon
	Errors      []string
}

// Valid reports whether the preview carries at least one importable record.
func (p *Preview) Valid() bool {
	return len(p.Meditations) > 0 || len(p.Sermons) > 0
}

// PreviewImport parses raw as either the full export shape or a bare array
// (treated as meditations only) and validates every record. Records missing
// required fields are rejected and reported, never silently accepted.
// No collection is mutated here; callers apply the preview after confirmation.
func PreviewImport(raw []byte) (*Preview, error) {
	var meditations []journal.Meditation
	var sermons []journal.Sermon

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &meditations); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	} else {
		var payload Payload
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		meditations = payload.Meditations
		sermons = payload.Sermons
	}

	preview := &Preview{}
	if len(meditations) == 0 {
		preview.Errors = append(preview.Errors, "aucune méditation trouvée")
	}
	for i, m := range meditations {
		if err := m.Validate(); err != nil {
			preview.Errors = append(preview.Errors, fmt.Sprintf("méditation %d: %v", i+1, err))
			continue
		}
		preview.Meditations = append(preview.Meditations, m)
	}
	for i, sm := range sermons {
		if err := sm.Validate(); err != nil {
			preview.Errors = append(preview.Errors, fmt.Sprintf("sermon %d: %v", i+1, err))
			continue
		}
		preview.Sermons = append(preview.Sermons, sm)
	}

	if !preview.Valid() {
		preview.Errors = append(preview.Errors, ErrNothingToImport.Error())
	}
	return preview, nil
}

// Apply appends the previewed records to the store's collections. Imported
// records keep their ids: a duplicate id across import and existing data is
// tolerated and appears as a separate entry.
func Apply(ctx context.Context, store *journal.Store, preview *Preview) error {
	if !preview.Valid() {
		return ErrNothingToImport
	}
	return store.AppendImported(ctx, preview.Meditations, preview.Sermons)
}

// Restore replaces both collections with the contents of a snapshot. A
// snapshot that parses but holds no importable records is rejected before
// any mutation, so an empty or fully-invalid snapshot can never wipe the
// journal. It returns the preview so callers can report dropped records.
func Restore(ctx context.Context, store *journal.Store, raw []byte) (*Preview, error) {
	preview, err := PreviewImport(raw)
	if err != nil {
		return nil, err
	}
	if !preview.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrNothingToImport, strings.Join(preview.Errors, "; "))
	}
	if err := store.ReplaceAll(ctx, preview.Meditations, preview.Sermons); err != nil {
		return nil, err
	}
	return preview, nil
}

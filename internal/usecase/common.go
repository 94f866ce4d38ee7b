package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase/interfaces"
)

var (
	ErrInvalidDocumentID        = errors.New("invalid document id")
	ErrActorRequired            = errors.New("actor id is required")
	ErrPDFRendererNotConfigured = errors.New("pdf renderer not configured")
	ErrDeliveryNotConfigured    = errors.New("delivery service not configured")
)

// DefaultCollaboratorTimeout bounds PDF rendering and delivery calls.
const DefaultCollaboratorTimeout = 10 * time.Second

// Options carries the knobs shared by the document use cases.
type Options struct {
	// CollaboratorTimeout bounds every external call. Zero means DefaultCollaboratorTimeout.
	CollaboratorTimeout time.Duration
	// Now overrides the wall clock, mostly for tests.
	Now func() time.Time
}

func (o Options) timeout() time.Duration {
	if o.CollaboratorTimeout <= 0 {
		return DefaultCollaboratorTimeout
	}
	return o.CollaboratorTimeout
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return func() time.Time { return time.Now().UTC() }
}

// keyedLocks serializes mutating operations per document inside one process.
// Cross-process races are caught by the version compare-and-set in the repositories.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*keyedLock)}
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidDocumentID
	}
	return id, nil
}

func requireActor(a entities.Actor) error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrActorRequired
	}
	return nil
}

// mapWriteError turns a repository version conflict into the domain ConflictError.
func mapWriteError(err error, kind, id string) error {
	if errors.Is(err, entities.ErrVersionConflict) {
		return &entities.ConflictError{Kind: kind, ID: id}
	}
	return err
}

// callWithTimeout runs a collaborator call under the bounded timeout.
func callWithTimeout(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(cctx)
}

// mergeCalcError folds a calculator validation failure into v. Any other error is a bug
// in the calculator and is reported on the items field.
func mergeCalcError(v *entities.ValidationError, err error) {
	if err == nil {
		return
	}
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		v.Merge("", ve)
		return
	}
	v.Add("items", err.Error())
}

// snapshotClient copies client details at creation time. Explicit input wins; blanks come
// from the order directory when one is configured.
func snapshotClient(ctx context.Context, dir interfaces.IOrderDirectory, orderRef string, explicit entities.ClientSnapshot) (entities.ClientSnapshot, error) {
	if dir == nil {
		return explicit, nil
	}
	if explicit.Name != "" && explicit.Email != "" && explicit.Phone != "" && explicit.Address != "" {
		return explicit, nil
	}
	fromDir, err := dir.GetClientSnapshot(ctx, orderRef)
	if err != nil {
		return entities.ClientSnapshot{}, err
	}
	return explicit.FillBlanks(fromDir), nil
}

package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
	"github.com/fhuszti/tourism-ms-go/internal/validation"
)

// Invalidator drops cached renderings of a record.
type Invalidator interface {
	DeleteRecord(ctx context.Context, kind string, id uuid.UUID) error
}

type CreateInput[R Resource] struct {
	Record  R
	Uploads RawUploads
}

type UpdateInput[R Resource] struct {
	ID      uuid.UUID
	Record  R
	Uploads RawUploads
	// Keep lists the current media to retain; nil when the client sent none.
	Keep *model.MediaSet
}

// Transaction runs create, update and delete for one resource kind so that a
// request writes the record at most once and never leaves staged files behind
// when it fails.
type Transaction[R Resource] struct {
	schema  Schema[R]
	records port.RecordStore[R]
	blobs   port.BlobStore
	cache   Invalidator
	newID   port.UUIDGen
	now     func() time.Time
}

type Option[R Resource] func(*Transaction[R])

func WithCache[R Resource](c Invalidator) Option[R] {
	return func(t *Transaction[R]) { t.cache = c }
}

func WithIDGen[R Resource](gen port.UUIDGen) Option[R] {
	return func(t *Transaction[R]) { t.newID = gen }
}

func WithClock[R Resource](now func() time.Time) Option[R] {
	return func(t *Transaction[R]) { t.now = now }
}

func NewTransaction[R Resource](schema Schema[R], records port.RecordStore[R], blobs port.BlobStore, opts ...Option[R]) *Transaction[R] {
	if schema.Slots == nil {
		schema.Slots = Flatten()
	}
	t := &Transaction[R]{
		schema:  schema,
		records: records,
		blobs:   blobs,
		newID:   uuid.NewUUID,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transaction[R]) Schema() Schema[R] {
	return t.schema
}

func (t *Transaction[R]) Create(ctx context.Context, in CreateInput[R]) (R, error) {
	var zero R

	bundle := Normalize(in.Uploads)
	staged := t.schema.Slots(bundle)

	var finalErr error
	defer func() {
		if finalErr != nil {
			t.compensate(ctx, bundle.All(), finalErr)
		}
	}()

	if finalErr = t.validate(in.Record, bundle, staged); finalErr != nil {
		return zero, finalErr
	}
	if finalErr = t.resolveReferences(ctx, in.Record); finalErr != nil {
		return zero, finalErr
	}

	rec := in.Record
	now := t.now()
	rec.SetRecordID(t.newID())
	rec.Stamp(now, now)
	rec.SetMedia(staged)

	if finalErr = t.records.Create(ctx, rec); finalErr != nil {
		logger.Errorf(ctx, "❌  Failed to create %s: %v", t.schema.Kind, finalErr)
		return zero, finalErr
	}

	t.discardUnused(ctx, bundle, staged)

	logger.Infof(ctx, "created %s #%s with %d media file(s)", t.schema.Kind, rec.RecordID(), len(staged))
	return rec, nil
}

func (t *Transaction[R]) Update(ctx context.Context, in UpdateInput[R]) (R, error) {
	var zero R

	bundle := Normalize(in.Uploads)
	incoming := t.schema.Slots(bundle)

	var finalErr error
	defer func() {
		if finalErr != nil {
			t.compensate(ctx, bundle.All(), finalErr)
		}
	}()

	if finalErr = t.validate(in.Record, bundle, incoming); finalErr != nil {
		return zero, finalErr
	}

	existing, err := t.fetch(ctx, in.ID)
	if err != nil {
		finalErr = err
		return zero, finalErr
	}
	if finalErr = t.resolveReferences(ctx, in.Record); finalErr != nil {
		return zero, finalErr
	}

	oldMedia := existing.Media()
	keep := in.Keep
	if keep != nil {
		// only media the record already owns can be kept
		owned := keep.Intersect(oldMedia)
		keep = &owned
	}
	finalMedia, toDelete := Reconcile(oldMedia, incoming, keep)

	if t.schema.MaxMedia > 0 && len(finalMedia) > t.schema.MaxMedia {
		finalErr = &ValidationError{Fields: map[string]string{t.mediaField(): "max"}}
		return zero, finalErr
	}
	if len(incoming) == 0 && keep != nil {
		if dropped := oldMedia.Without(finalMedia); len(dropped) > 0 {
			logger.Warnf(ctx, "⚠️  %s #%s no longer references %v; files are left in storage", t.schema.Kind, in.ID, dropped)
		}
	}

	rec := in.Record
	rec.SetRecordID(in.ID)
	rec.Stamp(existing.Created(), t.now())
	rec.SetMedia(finalMedia)

	if finalErr = t.records.Update(ctx, rec); finalErr != nil {
		logger.Errorf(ctx, "❌  Failed to update %s #%s: %v", t.schema.Kind, in.ID, finalErr)
		return zero, finalErr
	}

	// committed: everything below is advisory and outlives the request
	if len(toDelete) > 0 {
		if err := t.blobs.DeleteMany(context.WithoutCancel(ctx), toDelete, t.schema.Category); err != nil {
			logger.Warnf(ctx, "⚠️  could not prune old media of %s #%s: %v", t.schema.Kind, in.ID, err)
		}
	}
	t.discardUnused(ctx, bundle, incoming)
	t.invalidate(ctx, in.ID)

	logger.Infof(ctx, "updated %s #%s (kept %d, pruned %d media file(s))", t.schema.Kind, in.ID, len(finalMedia), len(toDelete))
	return rec, nil
}

// Delete removes the record's media then the record itself. The record is
// authoritative: media that cannot be removed is logged and left behind.
func (t *Transaction[R]) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := t.fetch(ctx, id)
	if err != nil {
		return err
	}

	if media := existing.Media(); len(media) > 0 {
		if err := t.blobs.DeleteMany(context.WithoutCancel(ctx), media, t.schema.Category); err != nil {
			logger.Warnf(ctx, "⚠️  could not remove media of %s #%s: %v", t.schema.Kind, id, err)
		}
	}

	if err := t.records.Delete(ctx, id); err != nil {
		return err
	}
	t.invalidate(ctx, id)

	logger.Infof(ctx, "deleted %s #%s", t.schema.Kind, id)
	return nil
}

func (t *Transaction[R]) Get(ctx context.Context, id uuid.UUID) (R, error) {
	return t.fetch(ctx, id)
}

func (t *Transaction[R]) fetch(ctx context.Context, id uuid.UUID) (R, error) {
	rec, err := t.records.GetByID(ctx, id)
	if errors.Is(err, port.ErrRecordNotFound) {
		var zero R
		return zero, &NotFoundError{Kind: t.schema.Kind, ID: id}
	}
	return rec, err
}

func (t *Transaction[R]) validate(rec R, bundle UploadBundle, media model.MediaSet) error {
	fields := map[string]string{}

	if err := validation.ValidateStruct(rec); err != nil {
		vf, ok := validation.Fields(err)
		if !ok {
			return &ValidationError{Fields: map[string]string{"body": "required"}}
		}
		for k, v := range vf {
			fields[k] = v
		}
	}
	for _, slot := range bundle.Malformed {
		fields[slot] = "media"
	}
	if t.schema.MaxMedia > 0 && len(media) > t.schema.MaxMedia {
		fields[t.mediaField()] = "max"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (t *Transaction[R]) resolveReferences(ctx context.Context, rec R) error {
	for _, ref := range t.schema.References {
		id := ref.ID(rec)
		ok, err := ref.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("resolve %s %s: %w", ref.Field, id, err)
		}
		if !ok {
			return &NotFoundError{Kind: ref.Kind, ID: id}
		}
	}
	return nil
}

// compensate removes files staged for a request that did not commit. It runs
// even when the request context is cancelled.
func (t *Transaction[R]) compensate(ctx context.Context, staged model.MediaSet, cause error) {
	if len(staged) == 0 {
		return
	}
	if err := t.blobs.DeleteMany(context.WithoutCancel(ctx), staged, t.schema.Category); err != nil {
		logger.Warnf(ctx, "⚠️  could not clean up %d staged %s file(s) after %q: %v", len(staged), t.schema.Kind, cause, err)
		return
	}
	logger.Infof(ctx, "cleaned up %d staged %s file(s)", len(staged), t.schema.Kind)
}

// discardUnused removes staged files that the slot rule did not pick. It runs
// after the commit, so a cancelled request context does not stop it.
func (t *Transaction[R]) discardUnused(ctx context.Context, bundle UploadBundle, used model.MediaSet) {
	unused := bundle.All().Without(used)
	if len(unused) == 0 {
		return
	}
	if err := t.blobs.DeleteMany(context.WithoutCancel(ctx), unused, t.schema.Category); err != nil {
		logger.Warnf(ctx, "⚠️  could not discard %d unused %s upload(s): %v", len(unused), t.schema.Kind, err)
	}
}

func (t *Transaction[R]) invalidate(ctx context.Context, id uuid.UUID) {
	if t.cache == nil {
		return
	}
	if err := t.cache.DeleteRecord(context.WithoutCancel(ctx), t.schema.Kind, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for %s #%s: %v", t.schema.Kind, id, err)
	}
}

func (t *Transaction[R]) mediaField() string {
	if t.schema.MediaField != "" {
		return t.schema.MediaField
	}
	return "media"
}

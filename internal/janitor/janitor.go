// Package janitor removes expired token records and their ciphertext blobs.
// The lifecycle controller never deletes anything itself; orphaned objects
// from failed uploads and expired-but-unclaimed records all end up here.
package janitor

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"filedrop/internal/model"
	"filedrop/internal/repository"
	"filedrop/internal/storage"
)

// Janitor periodically sweeps the record store for expired entries.
type Janitor struct {
	store    storage.Storage
	repo     repository.FileRepository
	interval time.Duration
	batch    int

	now func() time.Time
}

// New constructs a Janitor sweeping at the given interval, reaping at most
// batch records per sweep.
func New(store storage.Storage, repo repository.FileRepository, interval time.Duration, batch int) *Janitor {
	return &Janitor{
		store:    store,
		repo:     repo,
		interval: interval,
		batch:    batch,
		now:      time.Now,
	}
}

// Run blocks, sweeping once per interval until the context is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep reaps one batch of expired records. The blob is deleted before the
// row: a row without a blob would still refuse redemption correctly (the
// record is expired), while a blob without a row is invisible and gets
// retried next sweep. Per-record failures are logged and skipped so one bad
// entry cannot stall the rest of the batch.
func (j *Janitor) Sweep(ctx context.Context) {
	ids, err := j.repo.FindExpired(ctx, j.now().UTC(), j.batch)
	if err != nil {
		logJSON(map[string]any{
			"component": "janitor",
			"event":     "sweep_list_failed",
			"level":     "error",
			"error":     err.Error(),
		})
		return
	}
	if len(ids) == 0 {
		return
	}

	reaped := 0
	for _, id := range ids {
		if err := j.store.Delete(ctx, model.ObjectKey(id)); err != nil {
			logJSON(map[string]any{
				"component": "janitor",
				"event":     "blob_delete_failed",
				"level":     "error",
				"id":        id,
				"error":     err.Error(),
			})
			continue
		}
		if err := j.repo.Delete(ctx, id); err != nil {
			logJSON(map[string]any{
				"component": "janitor",
				"event":     "record_delete_failed",
				"level":     "error",
				"id":        id,
				"error":     err.Error(),
			})
			continue
		}
		reaped++
	}

	logJSON(map[string]any{
		"component": "janitor",
		"event":     "sweep_done",
		"level":     "info",
		"expired":   len(ids),
		"reaped":    reaped,
	})
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal janitor log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}

// Package drafts persists per-problem workspace drafts.
//
// One row per (contest id, problem index) holds the JSON-encoded file set
// and the time it was last flushed. The repository stores the payload as
// opaque bytes; decoding, and recovering from a malformed record, is the
// workspace's job.
//
// Typical Usage
//
//	repo := drafts.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, key, payload, time.Now())
//	d, _ := repo.Get(ctx, key) // nil when absent
//	recent, _ := repo.List(ctx)
package drafts

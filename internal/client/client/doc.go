// Package client contains the client-side building blocks for talking to the
// idolcode backend and for bootstrapping local storage.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): health,
//     coder search, login/register, idol persistence, the dashboard bundle,
//     skill comparison, problem history, submission checks, problem
//     statements, sample-test runs and the duck chat.
//  2. A concrete HTTP implementation (see HTTPClient) sending JSON bodies,
//     attaching a bearer token when the backend issued one, and mapping
//     status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     NewRepositories) wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrRejected and
// ErrBadResponse. Non-2xx answers come back as *APIError, which carries the
// status code and the backend's detail message and unwraps to the sentinel.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; a cancelled request returns the
// context error unchanged so callers can tell it apart from an outage.
package client

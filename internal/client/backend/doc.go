// Package backend contains the remote adapter for the SkillLink project
// endpoint.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic API contracts (AuthAPI, TableAPI, StorageAPI) for
//     the three capability groups the project exposes: authentication,
//     named-table CRUD, and blob storage.
//  2. A concrete REST implementation (RestClient) that holds the token pair
//     for the current session, injects the API key and bearer token on every
//     request, transparently refreshes an expired access token once, and
//     maps transport failures into the shared error taxonomy.
//  3. An S3-compatible storage implementation (S3Storage) for the project's
//     storage endpoint, with public-URL resolution.
//
// # Error Handling
//
// Failures surface as *common.RemoteError carrying a user-presentable
// message and a class (unauthorized / transient / other). Callers match
// classes with common.IsUnauthorized and common.IsTransient.
//
// Concurrency & Contexts
//
// RestClient is safe for concurrent use; the token pair is guarded by a
// mutex. All operations accept context.Context and honor cancellation.
package backend

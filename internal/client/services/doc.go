// Package services contains the application services of the SkillLink
// client: the session/auth cache and the profile and skill services built
// on the typed table layer.
//
// SessionService is the only shared mutable state in the client. Its
// invalidation protocol is the synchronization discipline: every successful
// auth mutation bumps an invalidation generation, and a cached read is only
// ever served from the current generation. A read that raced a mutation
// re-fetches instead of caching a possibly pre-mutation result.
package services

// Package cli provides the interactive SkillLink command-line client.
//
// It wires configuration, the backend adapter, the session cache, and an
// interactive REPL covering the same surface the browser UI exposes:
// sign-up, login, logout, password reset, profile viewing and editing,
// avatar upload, browsing/searching the skill listing with pagination, and
// posting a new skill.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

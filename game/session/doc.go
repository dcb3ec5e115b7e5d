// Package session keeps the Cell Tower server's live puzzle sessions.
//
// A Manager maps session IDs to service.Session values. Each session owns its
// own engine.Game, candidate region and action log, so two players on the
// same puzzle never see each other's words.
//
// Generated IDs are 4 hex characters drawn from crypto/rand, retried on
// collision. Callers may pick their own ID of up to 32 letters, digits, dashes
// and underscores. Lookups are case-insensitive.
//
// Nothing is written to disk: sessions end when they are deleted, when they
// sit idle past the retention window passed to Expire, or when the process
// exits.
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", puzzle)
//	...
//	manager.Touch(sess.ID)
//	expired := manager.Expire(24 * time.Hour)
package session

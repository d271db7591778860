// Package session holds the editor's application state.
//
// A [Session] owns the member collection, the selection, the target
// language, the drawing surface size and the family story. Every change goes
// through a named mutation, and [Session.View] derives the displayable
// state from a consistent snapshot.
//
// # Asynchronous results
//
// Translation and story requests complete after the user may have kept
// editing. Each request starts with a ticket recording the state it was
// issued against:
//
//	t, err := sess.BeginTranslation(id)
//	pair := client.TranslatePair(ctx, t.Name, t.Spouse, t.Language)
//	applied, err := sess.ApplyTranslation(t, pair)
//
// A result whose member was edited or deleted in the meantime is dropped
// and applied is false. Story tickets are invalidated by any change to
// names, relations, structure or language.
package session

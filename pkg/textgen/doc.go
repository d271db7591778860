// Package textgen provides name translation and family narratives backed by
// a generative-text service.
//
// [Client] never returns errors to its callers. Every operation has a
// fallback value that the editor can display directly:
//
//   - [Client.Translate] returns the input text unchanged
//   - [Client.Narrate] returns [Unavailable] when no service is configured
//     and the empty string when a request fails
//
// Failures are logged with their error code instead. A missing API key is
// a normal condition: the client is created without a [Generator] and
// warns once.
//
// The production [Generator] is [GenAI], which calls Gemini through
// google.golang.org/genai. Tests substitute their own.
package textgen

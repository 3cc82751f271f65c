// Package gemini implements llm.Transport over Google's Gemini API.
//
// It is an infrastructure adapter: it translates an llm.Request into a
// GenerateContent call with a system instruction and a JSON response schema,
// and maps Gemini failures onto llm error kinds. Retrying is left to the llm
// client.
//
// Gemini does not accept presence or frequency penalties on every model, so
// those parameters are not forwarded.
package gemini

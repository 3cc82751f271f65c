// Package openrouter implements llm.Transport over the OpenRouter
// chat-completions API, which speaks the OpenAI wire format.
package openrouter

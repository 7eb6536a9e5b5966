// Package providers implements the Checker interface for each supported LLM
// provider.
//
// A Checker takes a system prompt and one sentence and returns the model's
// raw verdict. Supported providers: Ollama / LM Studio for local models and
// OpenAI (GPT) for hosted ones.
//
// All providers share a common retry helper with exponential back-off and
// rate-limit handling, so a call is safely re-issuable after a transient
// failure.
//
// Use [New] to obtain a Checker by provider name and model string.
package providers

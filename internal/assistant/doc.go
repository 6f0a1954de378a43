// Package assistant provides the natural-language schedule query backed by
// the Gemini API. The assistant is an opaque text-in/text-out collaborator:
// the core only relies on it being asynchronous and fallible, and treats
// every failure as a non-fatal, reportable condition.
package assistant

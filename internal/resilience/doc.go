// Package resilience groups the failure-handling building blocks used
// around external calls: circuit breakers for the Postgres store, the
// search provider and the AI summarizer APIs, and retry with backoff
// for the summarizer APIs only. Corroboration searches are deliberately
// not retried; a failed search is reported to the caller as an ERROR
// result instead.
package resilience

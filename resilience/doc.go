// Package resilience wraps calls to remote collaborators (object storage, the
// hosted listing REST endpoint) with bounded retries and a circuit breaker.
//
// The gallery core itself never retries: a failed resolution falls back to the
// placeholder and the next call tries again. Retries here cover transient
// transport failures inside a single collaborator call.
package resilience

// Package store provides Redis-backed persistence for review reports.
//
// Reports are stored as JSON values keyed by review ID, with a sorted-set
// index on creation time so listings come back newest first. An optional
// TTL expires stored reports; the index entry is removed lazily when a
// listed report turns out to have expired.
package store

// Package illustration serves the listing API over the image_uploads table:
// a paged, sorted listing and a single-row lookup, both guarded by a shared
// secret header. Rows come from Postgres directly (pgx) or from the hosted
// PostgREST endpoint in front of it.
package illustration

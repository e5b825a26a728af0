// Package redis runs a go-redis pool as a lifecycle component and stores
// JSON values with a TTL through JSONStore. The gallery keeps its shared
// signed URL cache here.
package redis

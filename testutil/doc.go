// Package testutil starts gallery components inside tests and stops them
// again when the test ends.
//
//	store := storage.NewComponent(cfg, nil, nil)
//	testutil.Start(t, store)
//	// store.Storage() is ready; it is stopped by t.Cleanup.
package testutil

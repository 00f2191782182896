package testutil

import (
	"testing"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
)

// SetupTestDatastore opens an isolated in-memory datastore named after the
// running test and closes it when the test finishes. Callers apply migrations.
func SetupTestDatastore(t *testing.T) *datastore.Datastore {
	t.Helper()

	ds, err := datastore.New(NewTestDSN(t.Name()))
	if err != nil {
		t.Fatalf("Failed to open test datastore: %v", err)
	}

	t.Cleanup(func() {
		if err := ds.Close(); err != nil {
			t.Logf("Warning: failed to close test datastore: %v", err)
		}
	})

	return ds
}

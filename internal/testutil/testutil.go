package testutil

import (
	"fmt"
	"strings"
)

// NewTestDSN generates a DSN for an in-memory SQLite database for testing purposes.
// Slashes from subtest names are replaced so the name stays a valid URI path.
func NewTestDSN(testName string) string {
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(testName)
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

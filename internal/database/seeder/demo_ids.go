package seeder

import "github.com/google/uuid"

var demoNamespace = uuid.MustParse("5b0c3f0e-6d1a-4c39-9a57-0e1f3a2b9c11")

// DemoID derives a stable id so re-running the seeders is idempotent and
// demo tokens can be issued for known accounts.
func DemoID(name string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(name))
}

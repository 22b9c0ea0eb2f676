package models

// Owned is implemented by every entity scoped to a single user. The owner is the
// external identity-provider subject string, the sole authorization key used for
// mutation and deletion checks.
type Owned interface {
	OwnerID() string
}

package repository

import "github.com/aryasetia/playgate/internal/domain/entity"

// UserStore defines the interface for the durable user collection.
//
// The collection is read and written as a whole: callers load the full
// slice, mutate it in memory, and save it back. There is no transaction
// boundary, so two concurrent read-modify-write cycles can lose one
// writer's update (last write wins).
type UserStore interface {
	// LoadAll reads the entire collection. A read or parse failure is
	// reported as a warning and yields an empty slice, never an error.
	LoadAll() []entity.User

	// SaveAll rewrites the entire collection. On failure the in-memory
	// change is simply not durable.
	SaveAll(users []entity.User) error
}

// FindByEmail returns the index of the user with the given email in a
// loaded slice, or -1 if absent. Email is the record key.
func FindByEmail(users []entity.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

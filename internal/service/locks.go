// internal/service/locks.go
package service

import "sync"

// UserLocks menserialisasi mutasi per user. Dua request concurrent untuk user
// yang sama dieksekusi berurutan supaya read-modify-write pada progres tidak
// saling menimpa; user berbeda tidak saling memblokir.
type UserLocks struct {
	locks sync.Map // userID -> *sync.Mutex
}

// Lock mengunci mutex milik userID dan mengembalikan fungsi unlock-nya.
func (l *UserLocks) Lock(userID string) func() {
	value, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

package ports

// PasswordHasher hashes and verifies credentials. Implementations may be slow.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

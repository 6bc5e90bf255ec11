//go:build !darwin

package tgclient

// NewSessionStorage creates file-based session storage. An empty path selects
// DefaultSessionPath.
func NewSessionStorage(path string) SessionStorage {
	if path == "" {
		path = DefaultSessionPath()
	}
	return newFileStorage(path)
}

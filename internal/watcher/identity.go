package watcher

import "os"

// FileIdentity names the file backing a directory entry independent of its
// path. Two entries compare equal exactly when they refer to the same
// underlying file; a path reused by a new file (rotation) yields a new
// identity. Hard links to the same file share an identity.
//
// On Unix the identity is the (device, inode) pair. If the OS reuses an
// inode number after an unlink, the old and new file can collide; that
// false negative is accepted. On Windows, which exposes no inode through
// os.FileInfo, the file creation time stands in (see identity_windows.go).
type FileIdentity struct {
	dev uint64
	ino uint64
}

// IdentityOf derives the identity from stat metadata. It is a pure function
// of the metadata: two calls against an unmodified file return equal values.
func IdentityOf(fi os.FileInfo) FileIdentity {
	return identityOf(fi)
}

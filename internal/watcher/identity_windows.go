//go:build windows

package watcher

import (
	"os"
	"syscall"
)

// Windows exposes no inode through os.FileInfo, so the creation time stands
// in. Strictly weaker than an inode: two files created in the same filetime
// tick can collide, and a recreate within one tick looks like the same file.
func identityOf(fi os.FileInfo) FileIdentity {
	st := fi.Sys().(*syscall.Win32FileAttributeData)
	return FileIdentity{ino: uint64(st.CreationTime.Nanoseconds())}
}

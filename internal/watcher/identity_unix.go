//go:build unix

package watcher

import (
	"os"
	"syscall"
)

func identityOf(fi os.FileInfo) FileIdentity {
	st := fi.Sys().(*syscall.Stat_t)
	return FileIdentity{dev: uint64(st.Dev), ino: uint64(st.Ino)}
}

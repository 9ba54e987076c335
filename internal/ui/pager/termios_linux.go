package pager

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios       = unix.TCGETS
	ioctlWriteTermiosFlush = unix.TCSETSF
)

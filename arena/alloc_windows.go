//go:build windows

// File: arena/alloc_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows allocation path for KindAllocated arenas: reserves and commits
// large-page memory on the requested NUMA node via VirtualAllocExNuma,
// falling back to a plain heap slice on failure. Mirrors the teacher's
// core/buffer/bufferpool_windows.go.
package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procVirtualAllocExNuma = windows.NewLazySystemDLL("kernel32.dll").NewProc("VirtualAllocExNuma")
var procVirtualFree = windows.NewLazySystemDLL("kernel32.dll").NewProc("VirtualFree")

func platformAlloc(size, numaNode int) ([]byte, FreeFunc) {
	ret, _, _ := procVirtualAllocExNuma.Call(
		uintptr(windows.CurrentProcess()),
		0,
		uintptr(size),
		uintptr(windows.MEM_RESERVE|windows.MEM_COMMIT|windows.MEM_LARGE_PAGES),
		uintptr(windows.PAGE_READWRITE),
		uintptr(uint32(numaNode)),
	)
	if ret == 0 {
		return make([]byte, size), nil
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(ret)), size)
	return data, func(buf []byte, _ any) {
		if len(buf) == 0 {
			return
		}
		procVirtualFree.Call(
			uintptr(unsafe.Pointer(&buf[0])),
			0,
			uintptr(windows.MEM_RELEASE),
		)
	}
}

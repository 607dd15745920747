package alsa

import (
	"syscall"
	"unsafe"
)

// ioctl performs a generic ioctl syscall.
func ioctl(fd uintptr, req uintptr, arg uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}

	return nil
}

// Linux ioctl request codes pack direction, type, number and argument size
// into a single word. See Documentation/driver-api/ioctl.rst.
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2
)

// ioc assembles an ioctl request code.
func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

func ioNone(typ, nr uintptr) uintptr     { return ioc(iocNone, typ, nr, 0) }
func ioR(typ, nr, size uintptr) uintptr  { return ioc(iocRead, typ, nr, size) }
func ioW(typ, nr, size uintptr) uintptr  { return ioc(iocWrite, typ, nr, size) }
func ioWR(typ, nr, size uintptr) uintptr { return ioc(iocRead|iocWrite, typ, nr, size) }

// PCM ioctl request codes ('A' is the ALSA PCM ioctl type).
var (
	sndrvPcmIoctlInfo         uintptr
	sndrvPcmIoctlHwRefine     uintptr
	sndrvPcmIoctlHwParams     uintptr
	sndrvPcmIoctlSwParams     uintptr
	sndrvPcmIoctlStatus       uintptr
	sndrvPcmIoctlPrepare      uintptr
	sndrvPcmIoctlDrain        uintptr
	sndrvPcmIoctlResume       uintptr
	sndrvPcmIoctlWriteiFrames uintptr
)

func init() {
	sndrvPcmIoctlInfo = ioR('A', 0x01, unsafe.Sizeof(sndPcmInfo{}))
	sndrvPcmIoctlHwRefine = ioWR('A', 0x10, unsafe.Sizeof(sndPcmHwParams{}))
	sndrvPcmIoctlHwParams = ioWR('A', 0x11, unsafe.Sizeof(sndPcmHwParams{}))
	sndrvPcmIoctlSwParams = ioWR('A', 0x13, unsafe.Sizeof(sndPcmSwParams{}))
	sndrvPcmIoctlStatus = ioR('A', 0x20, unsafe.Sizeof(sndPcmStatus{}))
	sndrvPcmIoctlPrepare = ioNone('A', 0x40)
	sndrvPcmIoctlDrain = ioNone('A', 0x44)
	sndrvPcmIoctlResume = ioNone('A', 0x47)
	sndrvPcmIoctlWriteiFrames = ioW('A', 0x50, unsafe.Sizeof(sndXferi{}))
}

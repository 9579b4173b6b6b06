package duplicator

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	fsctlSetSparse              = 0x000900C4
	fsctlDuplicateExtentsToFile = 0x00094CF4
)

// CloneFile clones srcFile to dstFile via FSCTL_DUPLICATE_EXTENTS_TO_FILE,
// which shares extents on ReFS. The destination is marked sparse and sized
// first: duplicating extents requires the target range to exist.
func CloneFile(srcFile, dstFile string) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("clone source: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("clone source: %w", err)
	}

	dst, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("clone destination: %w", err)
	}
	defer dst.Close()

	if info.Size() == 0 {
		return nil
	}

	// Best effort; non-sparse targets can still share extents.
	_ = setSparse(windows.Handle(dst.Fd()))

	if err := dst.Truncate(info.Size()); err != nil {
		return fmt.Errorf("clone destination: %w", err)
	}
	if err := duplicateExtents(windows.Handle(dst.Fd()), windows.Handle(src.Fd()), info.Size()); err != nil {
		return fmt.Errorf("clone %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}

func setSparse(h windows.Handle) error {
	var returned uint32
	return windows.DeviceIoControl(h, fsctlSetSparse, nil, 0, nil, 0, &returned, nil)
}

// duplicateExtents clones the first length bytes from the source handle to
// the destination handle. An unaligned length is only legal because the
// range extends to end of file.
func duplicateExtents(dst, src windows.Handle, length int64) error {
	type duplicateExtentsData struct {
		FileHandle       windows.Handle
		SourceFileOffset int64
		TargetFileOffset int64
		ByteCount        int64
	}
	data := duplicateExtentsData{
		FileHandle: src,
		ByteCount:  length,
	}
	return os.NewSyscallError("DeviceIoControl",
		windows.DeviceIoControl(
			dst,
			fsctlDuplicateExtentsToFile,
			(*byte)(unsafe.Pointer(&data)),
			uint32(unsafe.Sizeof(data)),
			nil,
			0,
			nil,
			nil,
		),
	)
}

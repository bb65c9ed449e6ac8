package clean

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// ─── Shell32 / User32 Syscalls ───────────────────────────────────────────────

var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")

	modUser32          = windows.NewLazySystemDLL("user32.dll")
	procOpenClipboard  = modUser32.NewProc("OpenClipboard")
	procEmptyClipboard = modUser32.NewProc("EmptyClipboard")
	procCloseClipboard = modUser32.NewProc("CloseClipboard")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	// E_UNEXPECTED is what SHEmptyRecycleBinW returns for an empty bin.
	hresultUnexpected = 0x8000FFFF
)

// shQueryRBInfo mirrors SHQUERYRBINFO. Natural alignment pads after cbSize
// on 64-bit, matching the C layout.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

type systemShell struct{}

func (systemShell) RecycleBin() (int64, int64, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	// NULL root queries all drives.
	ret, _, _ := procQueryRecycleBin.Call(0, uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return 0, 0, errors.Newf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return info.i64Size, info.i64NumItems, nil
}

func (systemShell) EmptyRecycleBin() error {
	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	if hr != 0 && hr != hresultUnexpected {
		return errors.Newf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}

func (systemShell) ClearClipboard() error {
	ret, _, err := procOpenClipboard.Call(0)
	if ret == 0 {
		return errors.Wrap(err, "OpenClipboard")
	}
	defer procCloseClipboard.Call()

	if ret, _, err := procEmptyClipboard.Call(); ret == 0 {
		return errors.Wrap(err, "EmptyClipboard")
	}
	return nil
}

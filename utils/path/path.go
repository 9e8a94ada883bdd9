package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 專案根目錄的絕對路徑（由此檔案位置往上兩層）
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("❌ 無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 相對路徑先找工作目錄，找不到再以專案根目錄為基準
func Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(RootPath(), p)
}

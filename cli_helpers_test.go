package main

import (
	"bytes"
	"path/filepath"
	"testing"
)

// useBufferWriters 在测试期间把 stdOut/stdErr 替换为内存缓冲区，返回两者以便断言输出。
func useBufferWriters(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()

	out = &bytes.Buffer{}
	errOut = &bytes.Buffer{}

	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = out, errOut

	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
	return out, errOut
}

// configFixture 返回 internal/config/testdata 下的配置样例绝对路径；go test 的工作目录即模块根目录。
func configFixture(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("internal", "config", "testdata", name))
	if err != nil {
		t.Fatalf("无法定位配置样例: %v", err)
	}
	return path
}

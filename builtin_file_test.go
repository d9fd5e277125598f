package ari

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ip := NewInterpreter(testConfig())
	ip.Global.Define("p", StringValue(path))

	if _, err := ip.EvalSource(`write_file(p, "hello\nari");`); err != nil {
		t.Fatalf("write_file: %v", err)
	}
	v, err := ip.EvalSource(`read_file(p);`)
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	wantStr(t, v, "hello\nari")
}

func TestWriteFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ip := NewInterpreter(testConfig())
	ip.Global.Define("p", StringValue(path))

	if _, err := ip.EvalSource(`write_file(p, "first"); write_file(p, "second");`); err != nil {
		t.Fatalf("write_file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("want %q, got %q", "second", string(data))
	}
}

func TestReadFileMissing(t *testing.T) {
	ip := NewInterpreter(testConfig())
	ip.Global.Define("p", StringValue(filepath.Join(t.TempDir(), "missing.txt")))
	_, err := ip.EvalSource(`read_file(p);`)
	if err == nil {
		t.Fatal("expected IoError")
	}
	wantNativeErr(t, err, NativeIoError)
}

func TestWriteFileBadPath(t *testing.T) {
	ip := NewInterpreter(testConfig())
	ip.Global.Define("p", StringValue(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt")))
	_, err := ip.EvalSource(`write_file(p, "x");`)
	wantNativeErr(t, err, NativeIoError)
}

func TestFileNativesTypeCheck(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, `read_file(42);`), TypeMismatch)
	wantRuntimeErr(t, evalErr(t, `write_file("p", 42);`), TypeMismatch)
}

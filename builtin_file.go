package ari

import "os"

// ---- file natives ----------------------------------------------------------

func registerFileNatives(i *Interpreter) {
	// read_file(path: Str) -> Str
	i.mustRegister("read_file", []string{"path"}, func(c *NativeCall) (Value, error) {
		path, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		data, ioErr := os.ReadFile(path)
		if ioErr != nil {
			return Value{}, c.Fail(NativeIoError, "read_file: "+ioErr.Error())
		}
		return StringValue(string(data)), nil
	})
	setBuiltinDoc(i, "read_file", `read_file(path) — contents of the file as a String.
Fails with IoError when the file cannot be read.`)

	// write_file(path: Str, content: Str) -> Null
	i.mustRegister("write_file", []string{"path", "content"}, func(c *NativeCall) (Value, error) {
		path, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		content, err := c.StrArg(1)
		if err != nil {
			return Value{}, err
		}
		if ioErr := os.WriteFile(path, []byte(content), 0o644); ioErr != nil {
			return Value{}, c.Fail(NativeIoError, "write_file: "+ioErr.Error())
		}
		return NilValue(), nil
	})
	setBuiltinDoc(i, "write_file", `write_file(path, content) — write content to path, replacing any existing file.
Fails with IoError when the file cannot be written.`)
}

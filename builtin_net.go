package ari

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// ---- network natives -------------------------------------------------------
//
// web_get and web_post return a two-element array [status, body]. A response
// with a non-2xx status is still a result, not an error; only transport
// failures (DNS, refused connection, timeout) raise TransportError.

var webClient = &http.Client{Timeout: 30 * time.Second}

func registerNetNatives(i *Interpreter) {
	// web_get(url: Str) -> [Num, Str]
	i.mustRegister("web_get", []string{"url"}, func(c *NativeCall) (Value, error) {
		url, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		resp, httpErr := webClient.Get(url)
		if httpErr != nil {
			return Value{}, c.Fail(NativeTransportError, "web_get: "+httpErr.Error())
		}
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return Value{}, c.Fail(NativeTransportError, "web_get: reading response: "+readErr.Error())
		}
		return ArrayValue([]Value{
			NumberValue(float64(resp.StatusCode)),
			StringValue(string(body)),
		}), nil
	})
	setBuiltinDoc(i, "web_get", `web_get(url) — HTTP GET; returns [status, body].
Fails with TransportError when the request cannot complete.`)

	// web_post(url: Str, body: Str) -> [Num, Str]
	i.mustRegister("web_post", []string{"url", "body"}, func(c *NativeCall) (Value, error) {
		url, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		payload, err := c.StrArg(1)
		if err != nil {
			return Value{}, err
		}
		resp, httpErr := webClient.Post(url, "text/plain", strings.NewReader(payload))
		if httpErr != nil {
			return Value{}, c.Fail(NativeTransportError, "web_post: "+httpErr.Error())
		}
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return Value{}, c.Fail(NativeTransportError, "web_post: reading response: "+readErr.Error())
		}
		return ArrayValue([]Value{
			NumberValue(float64(resp.StatusCode)),
			StringValue(string(body)),
		}), nil
	})
	setBuiltinDoc(i, "web_post", `web_post(url, body) — HTTP POST with a text/plain body; returns [status, body].
Fails with TransportError when the request cannot complete.`)

	// serve_static_folder(path: Str, port: Num) -> never returns
	i.mustRegister("serve_static_folder", []string{"path", "port"}, func(c *NativeCall) (Value, error) {
		dir, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		port, err := c.IntArg(1)
		if err != nil {
			return Value{}, err
		}
		if port < 1 || port > 65535 {
			return Value{}, c.Fail(NativeRangeError, "serve_static_folder: port must be in 1..65535, got "+strconv.Itoa(port))
		}
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			return Value{}, c.Fail(NativeIoError, "serve_static_folder: "+dir+" is not a readable directory")
		}
		addr := ":" + strconv.Itoa(port)
		// blocks for the life of the server
		if srvErr := http.ListenAndServe(addr, http.FileServer(http.Dir(dir))); srvErr != nil {
			return Value{}, c.Fail(NativeTransportError, "serve_static_folder: "+srvErr.Error())
		}
		return NilValue(), nil
	})
	setBuiltinDoc(i, "serve_static_folder", `serve_static_folder(path, port) — serve the folder over HTTP on the given port.
Blocks until the server stops; fails with TransportError when the port cannot be bound.`)
}

// Package httpx carries bridge calls as JSON over HTTP.
//
// A call is POST {base}/exec with body {"op": ..., "args": [...]}. A 200
// response is {"result": <reply>}; any other status carries
// {"error": "<message>"}, which the client surfaces as a
// *transport.RemoteError.
package httpx

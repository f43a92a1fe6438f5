package entity

import "encoding/json"

// UpstreamResponse is a successful commerce platform reply, kept verbatim so
// forwarders can relay it without re-encoding.
type UpstreamResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// Package connectjson lets connect handlers and clients exchange plain Go
// structs as JSON, and maps league errors to connect errors and back.
package connectjson

import (
	"context"
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec replaces connect's protobuf-only JSON codec with encoding/json
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (Codec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}

// HandlerOptions returns the options every league handler is built with
func HandlerOptions(opts ...connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

// ClientOptions returns the options every league client is built with. The
// Connect protocol with JSON is used so the handlers need no protobuf codec.
func ClientOptions(opts ...connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// CallUnary sends req and unwraps the response, converting league errors
// with FromConnectError
func CallUnary[Req, Res any](ctx context.Context, client *connect.Client[Req, Res], req *Req) (*Res, error) {
	res, err := client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return res.Msg, nil
}

package api

import (
	"context"

	"todo-manager-api/tools"
)

// Dispatcher resolves and invokes tools by name.
type Dispatcher interface {
	// Call runs the named tool. The boolean reports whether the name is
	// registered; the envelope is well formed either way.
	Call(ctx context.Context, name string, args []byte) (tools.Envelope, bool)
	Tools() []tools.Tool
}

// Authenticator is implemented by types able to extract user IDs from headers.
// A nil Authenticator leaves the API open.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}

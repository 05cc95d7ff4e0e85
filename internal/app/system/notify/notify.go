// Package notify sends messages through the chat platform's REST API.
//
// Every send returns a Result value; callers decide whether a failure
// matters. Nothing in this package panics or fails a request: a dead chat
// platform degrades the product to "no notifications", never to errors on
// the approval workflow itself.
package notify

import "context"

// Button is one response button attached to a message. CustomID round-trips
// through the platform and comes back on the interaction webhook.
type Button struct {
	Label    string
	CustomID string
	Danger   bool
}

// Message is a platform-independent outbound message.
type Message struct {
	Content  string
	ImageURL string
	Buttons  []Button
}

// Result reports the outcome of one best-effort send.
type Result struct {
	Sent bool
	Err  error
}

// Notifier delivers messages. Implementations must honor ctx deadlines so
// a hung platform call cannot starve a request handler.
type Notifier interface {
	// SendDM opens (or reuses) a direct-message channel with the given
	// platform user and posts the message there.
	SendDM(ctx context.Context, discordID string, msg Message) Result
	// SendChannel posts to a regular channel, e.g. the admin channel that
	// receives creative-permission requests.
	SendChannel(ctx context.Context, channelID string, msg Message) Result
}

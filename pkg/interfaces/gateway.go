package interfaces

import "context"

// TargetCredentials carries the three configuration fields a publishing
// target must expose to be connectable. Validation happens before any call.
type TargetCredentials struct {
	Endpoint  string
	Principal string
	Secret    string
}

// GatewayPost is the payload handed to the remote gateway for a single item.
// Body is raw markdown; gateway implementations own the conversion to
// whatever representation the remote side consumes.
type GatewayPost struct {
	Title    string
	Body     string
	MediaURL string
}

// GatewayAcceptance is returned once the gateway has queued the post.
type GatewayAcceptance struct {
	// ExternalRef is the opaque reference the gateway minted for the
	// scheduled post. It is required to cancel the schedule later.
	ExternalRef string
	// Link points at the post on the remote side when the gateway shares it.
	Link string
}

// PublishingGateway is the external service that queues posts for future
// publication. localTimestamp encodes the wall-clock instant the user chose
// in the gateway's local-time representation; implementations must not
// convert it to UTC.
type PublishingGateway interface {
	CreateScheduledPost(ctx context.Context, creds TargetCredentials, post GatewayPost, localTimestamp string) (*GatewayAcceptance, error)
	CancelScheduledPost(ctx context.Context, creds TargetCredentials, externalRef string) error
}

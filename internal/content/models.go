package content

import pubcontent "github.com/goliatone/go-publisher/content"

type (
	Item          = pubcontent.Item
	Target        = pubcontent.Target
	NotFoundError = pubcontent.NotFoundError
)

var (
	ErrItemRemoteIDRequired = pubcontent.ErrItemRemoteIDRequired
	ErrItemTitleRequired    = pubcontent.ErrItemTitleRequired
	ErrItemStatusInvalid    = pubcontent.ErrItemStatusInvalid
	ErrPoolPayloadInvalid   = pubcontent.ErrPoolPayloadInvalid
	ErrTargetNameRequired   = pubcontent.ErrTargetNameRequired
)

// IsNotFound reports whether err wraps a NotFoundError.
var IsNotFound = pubcontent.IsNotFound

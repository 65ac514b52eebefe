package posts

import "errors"

// ErrPostNotFound is returned when a post lookup finds no matching record
var ErrPostNotFound = errors.New("post not found")

// Package transports registers every bundled transport with the default
// registry. Import it for the full set, or import individual transport
// packages to keep the dependency surface small:
//
//	import _ "github.com/drblury/eventbind/transport/transports"
package transports

import (
	_ "github.com/drblury/eventbind/transport/aws"
	_ "github.com/drblury/eventbind/transport/channel"
	_ "github.com/drblury/eventbind/transport/http"
	_ "github.com/drblury/eventbind/transport/jetstream"
	_ "github.com/drblury/eventbind/transport/kafka"
	_ "github.com/drblury/eventbind/transport/nats"
	_ "github.com/drblury/eventbind/transport/rabbitmq"
)

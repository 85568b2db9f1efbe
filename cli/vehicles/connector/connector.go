package connector

import "context"

type Connector interface {
	Connect(map[string]string) error
	Close() error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

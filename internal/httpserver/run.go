package httpserver

import (
	"context"
	"fmt"
)

// Run wires every route and blocks serving HTTP until the listener
// fails or the process stops.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("mapping handlers: %w", err)
	}

	srv.l.Infof(context.Background(), "HTTP server listening on :%d", srv.port)
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}

package client

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"time"

	"github.com/quic-go/quic-go"
)

// Follow dials a feed server and copies journal lines to w until the server
// closes the feed or ctx is cancelled.
func Follow(ctx context.Context, addr string, w io.Writer) error {
	tlsConf := &tls.Config{
		InsecureSkipVerify: true,
		NextProtos:         []string{"mts-feed"},
	}
	config := &quic.Config{
		MaxIdleTimeout:       5 * time.Minute,
		HandshakeIdleTimeout: 10 * time.Second,
	}

	connection, err := quic.DialAddr(ctx, addr, tlsConf, config)
	if err != nil {
		return err
	}
	defer connection.CloseWithError(0, "done")

	stream, err := connection.AcceptUniStream(ctx)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, stream); err != nil {
		// A clean shutdown on the server side surfaces as a stream reset
		// or closed connection; treat either as end of feed.
		var appErr *quic.ApplicationError
		if errors.As(err, &appErr) {
			return nil
		}
		return err
	}
	return nil
}

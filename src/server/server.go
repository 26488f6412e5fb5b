package server

import (
	"context"
	"io"
	"time"

	"github.com/quic-go/quic-go"
	"go.uber.org/zap"

	"main/src/journal"
)

// Server streams the live journal feed over QUIC. Each follower that
// connects gets its own unidirectional stream carrying every journal line
// emitted from that point on; the feed ends when the journal closes.
type Server struct {
	addr    string
	journal *journal.Journal
	log     *zap.SugaredLogger
}

func NewServer(addr string, j *journal.Journal, log *zap.SugaredLogger) *Server {
	return &Server{
		addr:    addr,
		journal: j,
		log:     log,
	}
}

// Start listens and serves followers until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	tlsConf, err := generateTLSConfig()
	if err != nil {
		return err
	}
	config := &quic.Config{
		MaxIdleTimeout:       5 * time.Minute,
		HandshakeIdleTimeout: 10 * time.Second,
	}
	listener, err := quic.ListenAddr(s.addr, tlsConf, config)
	if err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { _ = listener.Close() })
	defer stop()

	s.log.Infof("feed listening on %s", s.addr)

	for {
		connection, err := listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.serveFollower(connection)
	}
}

func (s *Server) serveFollower(connection quic.Connection) {
	defer connection.CloseWithError(0, "feed closed")

	follower := s.journal.Attach()
	defer s.journal.Detach(follower)

	stream, err := connection.OpenUniStream()
	if err != nil {
		s.log.Warnf("open feed stream: %v", err)
		return
	}
	defer stream.Close()

	for {
		line, ok := follower.Next()
		if !ok {
			return
		}
		if _, err := io.WriteString(stream, line); err != nil {
			s.log.Warnf("feed write: %v", err)
			return
		}
	}
}

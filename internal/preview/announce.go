package preview

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/nathanielng/qdev/internal/logging"
)

const (
	// mDNS service parameters for the preview endpoint. Plain _http._tcp so
	// generic browsers and discovery tools can see it.
	serviceType   = "_http._tcp"
	serviceDomain = "local."
)

// mdnsHandle is the part of zeroconf.Server the preview server holds on to.
type mdnsHandle interface {
	Shutdown()
}

// Announce registers the running preview server over mDNS under the given
// instance name so other machines on the LAN can discover and open it. Must
// be called after Start. Announce is optional; the preview works without it.
func (s *Server) Announce(instance string) error {
	port := s.Port()
	if port == 0 {
		return fmt.Errorf("cannot announce: server not started")
	}
	if instance == "" {
		instance = "qdev preview"
	}

	mdns, err := zeroconf.Register(instance, serviceType, serviceDomain, port, []string{"path=/"}, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	s.mdns = mdns

	logging.Info("preview announced over mDNS",
		zap.String("instance", instance),
		zap.String("service", serviceType),
		zap.Int("port", port),
	)
	return nil
}

func (s *Server) stopAnnounce() {
	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}
}

package net

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_maskboard._tcp"

// service describes the mask feed for mDNS, reachable at ips.
func service(port int, ips []net.IP) (*mdns.MDNSService, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	info := []string{"MaskBoard live mask feed", "path=" + FeedPath}
	svc, err := mdns.NewMDNSService(host, serviceType, "", "", port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return svc, nil
}

// Advertise announces the feed on the local network. Shut the returned
// server down to withdraw it.
func Advertise(port int) (*mdns.Server, error) {
	svc, err := service(port, []net.IP{net.ParseIP(OutgoingIP())})
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised feeds and reports each as a ws:// URL.
func Browse(found func(url string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("ws://%s:%d%s", e.AddrV4, e.Port, FeedPath))
		}
	}()
	err := mdns.Lookup(serviceType, entries)
	close(entries)
	<-done
	return err
}

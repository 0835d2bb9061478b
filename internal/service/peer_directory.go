package service

import (
	"fmt"

	"blindbuy-escrow/internal/core/ports"
)

// StaticPeerDirectory implements ports.PeerDirectory from configuration.
type StaticPeerDirectory struct {
	byKey map[string]ports.Peer
}

// NewStaticPeerDirectory indexes peers by access key. Empty or duplicate
// keys are rejected.
func NewStaticPeerDirectory(peers ...ports.Peer) (*StaticPeerDirectory, error) {
	d := &StaticPeerDirectory{byKey: make(map[string]ports.Peer, len(peers))}
	for _, p := range peers {
		if p.AccessKey == "" || p.SecretKey == "" {
			return nil, fmt.Errorf("peer %q: access key and secret key are required", p.Name)
		}
		if prev, dup := d.byKey[p.AccessKey]; dup {
			return nil, fmt.Errorf("peers %q and %q share an access key", prev.Name, p.Name)
		}
		d.byKey[p.AccessKey] = p
	}
	return d, nil
}

func (d *StaticPeerDirectory) Lookup(accessKey string) (*ports.Peer, bool) {
	p, ok := d.byKey[accessKey]
	if !ok {
		return nil, false
	}
	return &p, true
}

package radix

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkStokenet Network = "stokenet"
)

var gatewayURLs = map[Network]string{
	NetworkMainnet:  "https://mainnet.radixdlt.com",
	NetworkStokenet: "https://babylon-stokenet-gateway.radixdlt.com",
}

// well-known XRD resource addresses, used as the default native token address
var xrdAddresses = map[Network]string{
	NetworkMainnet:  "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd",
	NetworkStokenet: "resource_tdx_2_1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd",
}

var ErrUnsupportedNetwork = errors.New("unsupported network")

// ParseNetwork accepts the network name case-insensitively.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsSupported() {
		return "", errors.Wrapf(ErrUnsupportedNetwork, "%q", s)
	}
	return n, nil
}

func (n Network) IsSupported() bool {
	_, ok := gatewayURLs[n]
	return ok
}

// GatewayURL returns the public gateway base URL of the network.
func (n Network) GatewayURL() string {
	return gatewayURLs[n]
}

func (n Network) XRDAddress() string {
	return xrdAddresses[n]
}

func (n Network) String() string {
	return string(n)
}

package net

import (
	"fmt"
	"net"

	"InkBoard/internal/logging"
)

// OutgoingIP finds the local IPv4 address peers should use to reach this
// host. Without a default route it falls back to the first address of an
// interface that is up, and finally to loopback.
func OutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return interfaceIPv4()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

func interfaceIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4().String(), nil
			}
		}
	}
	logging.For("net").Warn("no suitable local IP found, share link uses loopback")
	return "127.0.0.1", nil
}

// ShareLink formats the address clients open to join a host.
func ShareLink(scheme, ip string, port int) string {
	return scheme + net.JoinHostPort(ip, fmt.Sprint(port))
}

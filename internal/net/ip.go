package net

import (
	"fmt"
	"log"
	"net"
)

// OutgoingIP finds the address other machines on the LAN can reach us at.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route to the internet; pick an interface instead
		return interfaceIP()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func interfaceIP() string {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	log.Println("[FEED] No LAN address found, falling back to loopback")
	return "127.0.0.1"
}

// FeedURL is the address viewers connect to.
func FeedURL(host string, port int) string {
	return fmt.Sprintf("ws://%s:%d%s", host, port, FeedPath)
}

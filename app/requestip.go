package app

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

type IpData struct {
	Ip   string
	Port string
}

func GetRequestIpData(r *http.Request) (IpData, error) {
	ip, port, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return IpData{}, err
	}
	if net.ParseIP(ip) == nil {
		return IpData{}, errors.New("Invalid remote address: " + r.RemoteAddr)
	}
	return IpData{Ip: ip, Port: port}, nil
}

// GetForwardedForIpData reads the client entry (the first one) of
// X-Forwarded-For. No header is not an error.
func GetForwardedForIpData(r *http.Request) (IpData, error) {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor == "" {
		return IpData{}, nil
	}

	first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])

	ip, port, err := net.SplitHostPort(first)
	if err != nil {
		// Mostly no port, which is the common case.
		ip = first
		port = ""
	}
	if net.ParseIP(ip) == nil {
		return IpData{}, errors.New("Invalid X-Forwarded-For: " + forwardedFor)
	}
	return IpData{Ip: ip, Port: port}, nil
}

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-b storage backend: caldav, sqlite or file
//	-d database DSN (sqlite file path)
//	-f blob store file path
//	-caldav-url CalDAV server URL
//	-caldav-user CalDAV username
//	-caldav-password CalDAV password
//	-calendar-name dedicated calendar display name
//	-advisor-url generative-text endpoint base URL
//	-advisor-model generative model name
//	-advisor-key generative-text API key
//	-push-gateway push gateway URL for due notifications
//	-digest-time morning digest time in HH:MM
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var backend string
	var databaseDSN string
	var blobFilePath string
	var caldavURL, caldavUser, caldavPassword, calendarName string
	var advisorURL, advisorModel, advisorKey string
	var pushGatewayURL string
	var digestTime string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&backend, "b", "", "Storage backend: caldav|sqlite|file")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN (sqlite file path)")
	flag.StringVar(&blobFilePath, "f", "", "Blob store file path")
	flag.StringVar(&caldavURL, "caldav-url", "", "CalDAV server URL")
	flag.StringVar(&caldavUser, "caldav-user", "", "CalDAV username")
	flag.StringVar(&caldavPassword, "caldav-password", "", "CalDAV password")
	flag.StringVar(&calendarName, "calendar-name", "", "Dedicated calendar display name")
	flag.StringVar(&advisorURL, "advisor-url", "", "Generative-text endpoint base URL")
	flag.StringVar(&advisorModel, "advisor-model", "", "Generative model name")
	flag.StringVar(&advisorKey, "advisor-key", "", "Generative-text API key")
	flag.StringVar(&pushGatewayURL, "push-gateway", "", "Push gateway URL")
	flag.StringVar(&digestTime, "digest-time", "", "Morning digest time (HH:MM)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Backend: backend,
			DB: DB{
				DSN: databaseDSN,
			},
			File: File{
				Path: blobFilePath,
			},
			CalDAV: CalDAV{
				URL:          caldavURL,
				Username:     caldavUser,
				Password:     caldavPassword,
				CalendarName: calendarName,
			},
		},
		Advisor: Advisor{
			BaseURL: advisorURL,
			Model:   advisorModel,
			APIKey:  advisorKey,
		},
		Notify: Notify{
			PushGatewayURL: pushGatewayURL,
			DigestTime:     digestTime,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

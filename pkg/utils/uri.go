package utils

import "strings"

// Prefix is the path the routes are mounted under.
var Prefix = "/"

var (
	LandingURI  = "/"
	HealthURI   = "/health"
	LoginURI    = "/login"
	RegisterURI = "/register"
	LogoutURI   = "/logout"
)

var (
	LoginTemplate    = "auth/login"
	RegisterTemplate = "auth/register"
	ErrorTemplate    = "auth/error"
)

// URL returns the public path of a route, with the mount prefix.
func URL(uri string) string {
	prefix := strings.TrimRight(Prefix, "/")
	if prefix == "" {
		return uri
	}
	if uri == "/" {
		return prefix
	}
	return prefix + "/" + strings.TrimLeft(uri, "/")
}

func GetURIs() map[string]string {
	return map[string]string{
		"Landing":  URL(LandingURI),
		"Login":    URL(LoginURI),
		"Register": URL(RegisterURI),
		"Logout":   URL(LogoutURI),
	}
}

const RequestIDHeader = "X-Request-ID"

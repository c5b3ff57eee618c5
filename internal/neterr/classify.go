package neterr

import (
	"maps"
	"strconv"
)

var transportMessages = map[int]string{
	CodeUnknown:                "An unknown error occurred.",
	CodeCancelled:              "The request was cancelled.",
	CodeBadURL:                 "The request URL is malformed.",
	CodeTimedOut:               "The request timed out.",
	CodeCannotFindHost:         "The server could not be found.",
	CodeCannotConnectToHost:    "Could not connect to the server.",
	CodeNetworkConnectionLost:  "The network connection was lost.",
	CodeDNSLookupFailed:        "The server address could not be resolved.",
	CodeTooManyRedirects:       "The server redirected too many times.",
	CodeNotConnectedToInternet: "The internet connection appears to be offline.",
	CodeBadServerResponse:      "The server returned a bad response.",
	CodeZeroByteResource:       "The server returned an empty response.",
	CodeSecureConnectionFailed: "A secure connection to the server could not be made.",
	CodeCertificateUntrusted:   "The server's certificate is not trusted.",
}

var statusMessages = map[int]string{
	400: "Bad request.",
	401: "Authentication is required.",
	402: "Payment is required.",
	403: "Access to this resource is forbidden.",
	404: "The requested resource was not found.",
	405: "The request method is not allowed.",
	406: "The response format is not acceptable.",
	407: "Proxy authentication is required.",
	408: "The server timed out waiting for the request.",
	409: "The request conflicts with the current state of the resource.",
	410: "The requested resource is no longer available.",
	411: "The request is missing a content length.",
	412: "A request precondition failed.",
	413: "The request is too large.",
	414: "The request URL is too long.",
	415: "The media type is not supported.",
	416: "The requested range cannot be satisfied.",
	417: "The server could not meet the expectation.",
	418: "The server refuses to brew coffee because it is a teapot.",
	421: "The request was sent to the wrong server.",
	422: "The request could not be processed.",
	423: "The resource is locked.",
	424: "A previous request failed.",
	425: "The server is unwilling to process a replayed request.",
	426: "The client must upgrade its protocol.",
	428: "The request must be conditional.",
	429: "Too many requests. Try again later.",
	431: "The request headers are too large.",
	451: "The resource is unavailable for legal reasons.",
	500: "The server encountered an internal error.",
	501: "The server does not support this request.",
	502: "The server received an invalid response from upstream.",
	503: "The service is unavailable. Try again later.",
	504: "The upstream server timed out.",
	505: "The HTTP version is not supported.",
	506: "The server has a content negotiation loop.",
	507: "The server is out of storage.",
	508: "The server detected an infinite loop.",
	510: "Further extensions to the request are required.",
	511: "Network authentication is required.",
}

var messages = merge(transportMessages, statusMessages)

// merge combines the two tables. Status entries replace transport entries
// with the same code.
func merge(transport, status map[int]string) map[int]string {
	out := maps.Clone(transport)
	if out == nil {
		out = make(map[int]string, len(status))
	}
	maps.Copy(out, status)
	return out
}

// Classify returns the message for code, or false when there is none.
func Classify(code int) (string, bool) {
	msg, ok := messages[code]
	return msg, ok
}

// AlertTitle is the title shown above a classified message.
func AlertTitle(code int) string {
	return "Error: " + strconv.Itoa(code)
}

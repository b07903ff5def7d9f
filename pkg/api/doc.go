// Package api holds the request and response messages of the SplitEase RPC services.
//
// Messages travel as JSON over Connect (see package apiconnect). Money amounts are
// decimal strings such as "42.00"; dates are "2006-01-02"; timestamps are unix seconds.
package api

// Package teamcity defines the public client surface for the TeamCity REST
// API: the Client interface with its per-resource sub-interfaces, the
// configuration struct, the error taxonomy, and the wire types exchanged
// with the server.
//
// Construct clients with the companion package
// github.com/teamcity-go/teamcity-client/pkg/tcclient.
package teamcity

// Package ports holds the port records shown by the portdeck dashboard and
// the filtering applied to them.
//
// The list is static demo data; nothing here scans or signals processes.
// Filter combines the three dashboard controls: a free-text query matched
// against port number, name, description and tags; a status filter; and
// the "hide system ports" toggle.
package ports

// Package searchlite implements a self-contained web search engine: it
// crawls an explicit allow-list of trusted sources, indexes their textual
// content in an embedded store, and answers keyword queries with ranked,
// snippeted results, without depending on any external search API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package searchlite

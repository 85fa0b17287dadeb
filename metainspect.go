// Package metainspect fetches a single web page and extracts a fixed set of
// metadata fields from it: title, description, images, Open Graph tags,
// feeds, favicon, keywords, author, charset and theme color.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/, rod/).
package metainspect

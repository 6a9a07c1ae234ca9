// Package models defines the client-side data shapes exchanged with the
// idolcode backend and persisted locally: the session user and idol, coder
// search results, problems, dashboard bundles, test runs, chat messages and
// workspace drafts.
//
// Wire names follow the backend's camelCase JSON. Identifiers that the
// backend sometimes sends as numbers and sometimes as strings use FlexString.
package models

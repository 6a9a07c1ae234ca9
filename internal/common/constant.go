// Package common contains constants and sentinel errors shared by the
// idolcode client packages.
package common

// Durable storage keys. They match the names the web client used in local
// storage so exported data stays recognisable.
const (
	UserStorageKey = "idolcode_user"
	IdolStorageKey = "idolcode_idol"
)

// CodeforcesBaseURL is where problem and submission links point.
const CodeforcesBaseURL = "https://codeforces.com"

// AuthorizationHeaderName carries the backend session token, when the
// backend issues one.
const AuthorizationHeaderName = "Authorization"

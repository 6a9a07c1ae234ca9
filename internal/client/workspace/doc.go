// Package workspace implements the problem workspace: draft files persisted
// per problem, Coach and Rival modes, the Rival countdown, sample test runs,
// the duck chat and submission hand-off.
package workspace

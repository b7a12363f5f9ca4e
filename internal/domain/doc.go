// Package domain holds the model types, repository contracts, and sentinel
// errors shared by all layers. It has no dependencies on storage or HTTP.
package domain

// Package suggest asks a language model for debate topics.
package suggest

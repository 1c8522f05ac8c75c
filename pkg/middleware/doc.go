// Package middleware provides CORS and request logging middleware for modules.
package middleware

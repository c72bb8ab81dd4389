// Package api handles incoming HTTP requests for the roster endpoint:
// action dispatch, request decoding, and response formatting. It acts as an
// adapter between external clients and the roster service, translating HTTP
// concerns to business operations.
package api

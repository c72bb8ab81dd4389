// Package domain contains the core business entities and rules of the
// roster service: the Member entity, its field and picture validation,
// and the year-scoped sequential identity policy. It is independent of
// any specific storage or delivery mechanism.
package domain

// Package xmlfile persists the member roster as a single XML document on
// disk. The whole collection is read and written as one unit, which keeps
// the format human-inspectable and diff-friendly at roster scale.
package xmlfile

import (
	"context"
	"encoding/xml"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shaxn3/WSTFinalProject/internal/domain"
	"github.com/shaxn3/WSTFinalProject/internal/store"
)

// documentMode makes the backing document world-writable, matching the
// open read/write access model of the service.
const documentMode = 0o666

// xmlMember mirrors domain.Member in the on-disk element layout. The XML
// encoder escapes markup-significant characters on write and unescapes them
// on read, so field values round-trip exactly.
type xmlMember struct {
	ID      string `xml:"id"`
	Name    string `xml:"name"`
	Email   string `xml:"email"`
	Course  string `xml:"course"`
	Picture string `xml:"picture"`
}

// xmlDocument is the root element holding the serialized collection.
type xmlDocument struct {
	XMLName xml.Name    `xml:"members"`
	Members []xmlMember `xml:"member"`
}

// Store is a store.MemberStore backed by one XML file.
type Store struct {
	path   string
	logger *slog.Logger
}

// Interface guard.
var _ store.MemberStore = (*Store)(nil)

// New creates a Store persisting to the XML document at path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for xmlfile.Store")
	}

	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "xmlfile_store")),
	}
}

// Load returns the current collection in stored order. A missing document is
// created empty and well-formed. Read and parse failures are logged and
// degrade to an empty collection: callers treat an unreadable store as empty
// rather than failing the request.
func (s *Store) Load(ctx context.Context) ([]domain.Member, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if saveErr := s.Save(ctx, nil); saveErr != nil {
			s.logger.Error("failed to create empty members document",
				slog.String("path", s.path),
				slog.String("error", saveErr.Error()))
		}
		return []domain.Member{}, nil
	}
	if err != nil {
		s.logger.Error("failed to read members document",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return []domain.Member{}, nil
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		s.logger.Error("failed to parse members document",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return []domain.Member{}, nil
	}

	members := make([]domain.Member, 0, len(doc.Members))
	for _, m := range doc.Members {
		members = append(members, domain.Member{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Course:  m.Course,
			Picture: m.Picture,
		})
	}
	return members, nil
}

// Save serializes the full collection and replaces the document's prior
// contents. The new contents are written to a uniquely named temp file next
// to the document and renamed over it, so concurrent readers never observe a
// partial write. The resulting document is world-writable.
func (s *Store) Save(_ context.Context, members []domain.Member) error {
	doc := xmlDocument{Members: make([]xmlMember, 0, len(members))}
	for _, m := range members {
		doc.Members = append(doc.Members, xmlMember{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Course:  m.Course,
			Picture: m.Picture,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return store.NewWriteError(s.path, "marshal", err)
	}
	data := append([]byte(xml.Header), body...)
	data = append(data, '\n')

	// Unique temp name: parallel saves must not clobber each other's
	// scratch files before the rename.
	tmp := filepath.Join(
		filepath.Dir(s.path),
		"."+filepath.Base(s.path)+".tmp-"+uuid.NewString(),
	)

	if err := os.WriteFile(tmp, data, documentMode); err != nil {
		return store.NewWriteError(s.path, "write", err)
	}

	// WriteFile applies the process umask; the open-access contract wants
	// the document world-writable regardless.
	if err := os.Chmod(tmp, documentMode); err != nil {
		_ = os.Remove(tmp)
		return store.NewWriteError(s.path, "chmod", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return store.NewWriteError(s.path, "rename", err)
	}

	return nil
}

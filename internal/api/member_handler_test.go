package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shaxn3/WSTFinalProject/internal/domain"
	"github.com/shaxn3/WSTFinalProject/internal/service/roster"
	"github.com/shaxn3/WSTFinalProject/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRosterService is a mock implementation of RosterService for testing.
type MockRosterService struct {
	ListFn    func(ctx context.Context) ([]domain.Member, error)
	ReplaceFn func(ctx context.Context, members []domain.Member) error
	AddFn     func(ctx context.Context, candidate domain.Member) (domain.Member, error)
	UpdateFn  func(ctx context.Context, id string, candidate domain.Member) (domain.Member, error)
	DeleteFn  func(ctx context.Context, id string) error
	StatsFn   func(ctx context.Context) (roster.Stats, error)
}

func (m *MockRosterService) List(ctx context.Context) ([]domain.Member, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockRosterService) Replace(ctx context.Context, members []domain.Member) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, members)
	}
	return nil
}

func (m *MockRosterService) Add(ctx context.Context, candidate domain.Member) (domain.Member, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, candidate)
	}
	return candidate, nil
}

func (m *MockRosterService) Update(ctx context.Context, id string, candidate domain.Member) (domain.Member, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, candidate)
	}
	return candidate, nil
}

func (m *MockRosterService) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockRosterService) Stats(ctx context.Context) (roster.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return roster.Stats{Courses: map[string]int{}}, nil
}

// serve runs one request through a MemberHandler over the mock service.
func serve(t *testing.T, svc RosterService, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := NewMemberHandler(svc, logger)

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleUnknownAction(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "missing_action", target: "/api/members"},
		{name: "unsupported_action", target: "/api/members?action=destroy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &MockRosterService{}, http.MethodGet, tc.target, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "Invalid action. Supported actions: read, save, add, update, delete, stats", body["error"])
		})
	}
}

func TestHandleRead(t *testing.T) {
	t.Run("returns_bare_array", func(t *testing.T) {
		svc := &MockRosterService{
			ListFn: func(ctx context.Context) ([]domain.Member, error) {
				return []domain.Member{
					{ID: "2025-001", Name: "Ann Lee", Email: "ann@x.com", Course: "CS101"},
				}, nil
			},
		}

		rec := serve(t, svc, http.MethodGet, "/api/members?action=read", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var members []domain.Member
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
		require.Len(t, members, 1)
		assert.Equal(t, "2025-001", members[0].ID)
	})

	t.Run("empty_collection_is_empty_array_not_null", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodGet, "/api/members?action=read", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}

func TestHandleAdd(t *testing.T) {
	t.Run("success_envelope_includes_stored_member", func(t *testing.T) {
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				candidate.ID = "2025-001"
				return candidate, nil
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", domain.Member{
			Name:   "Ann Lee",
			Email:  "ann@x.com",
			Course: "CS101",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Member added successfully", body["message"])
		member, ok := body["member"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "2025-001", member["id"])
	})

	t.Run("malformed_body", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=add", "{not json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON data", decodeBody(t, rec)["error"])
	})

	t.Run("null_body_is_malformed_not_validation", func(t *testing.T) {
		added := false
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				added = true
				return candidate, nil
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", "null")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON data", decodeBody(t, rec)["error"])
		assert.False(t, added, "a null body must not degrade to a zero-value candidate")
	})

	t.Run("field_validation_details", func(t *testing.T) {
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				return domain.Member{}, &roster.ValidationError{Fields: []domain.FieldError{
					{Field: "name", Kind: domain.NameTooShort, Message: "Name must be at least 2 characters"},
					{Field: "email", Kind: domain.EmailInvalid, Message: "Valid email is required"},
				}}
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", domain.Member{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation failed", body["error"])
		details, ok := body["details"].([]interface{})
		require.True(t, ok)
		assert.Len(t, details, 2)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				return domain.Member{}, roster.ErrDuplicateEmail
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", domain.Member{
			Name: "Ann Lee", Email: "ann@x.com", Course: "CS101",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email already exists", decodeBody(t, rec)["error"])
	})

	t.Run("invalid_image", func(t *testing.T) {
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				return domain.Member{}, roster.ErrInvalidImage
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", domain.Member{
			Name: "Ann Lee", Email: "ann@x.com", Course: "CS101", Picture: "data:video/mp4;base64,AA==",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid image format", decodeBody(t, rec)["error"])
	})

	t.Run("store_write_failure_is_internal", func(t *testing.T) {
		svc := &MockRosterService{
			AddFn: func(ctx context.Context, candidate domain.Member) (domain.Member, error) {
				return domain.Member{}, store.NewWriteError("members.xml", "rename", errors.New("disk full"))
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=add", domain.Member{
			Name: "Ann Lee", Email: "ann@x.com", Course: "CS101",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Failed to save member", body["error"])
		assert.NotContains(t, rec.Body.String(), "disk full", "internal detail must stay out of the response")
	})
}

func TestHandleSave(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got []domain.Member
		svc := &MockRosterService{
			ReplaceFn: func(ctx context.Context, members []domain.Member) error {
				got = members
				return nil
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=save", []domain.Member{
			{ID: "2025-001", Name: "Ann Lee", Email: "ann@x.com", Course: "CS101"},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Members saved successfully", decodeBody(t, rec)["message"])
		require.Len(t, got, 1)
	})

	t.Run("null_body_is_rejected_without_touching_the_collection", func(t *testing.T) {
		replaced := false
		svc := &MockRosterService{
			ReplaceFn: func(ctx context.Context, members []domain.Member) error {
				replaced = true
				return nil
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=save", "null")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON data", decodeBody(t, rec)["error"])
		assert.False(t, replaced, "a null body must never reach the service as an empty collection")
	})

	t.Run("trailing_garbage_is_rejected", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=save", `[]junk`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON data", decodeBody(t, rec)["error"])
	})

	t.Run("per_record_details_keyed_by_index", func(t *testing.T) {
		svc := &MockRosterService{
			ReplaceFn: func(ctx context.Context, members []domain.Member) error {
				return &roster.ValidationError{Records: map[string][]domain.FieldError{
					"member_0": {{Field: "email", Kind: domain.EmailDuplicate, Message: "Email already exists"}},
					"member_1": {{Field: "email", Kind: domain.EmailDuplicate, Message: "Email already exists"}},
				}}
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=save", []domain.Member{{}, {}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation failed", body["error"])
		details, ok := body["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, details, "member_0")
		assert.Contains(t, details, "member_1")
	})
}

func TestHandleUpdate(t *testing.T) {
	t.Run("requires_id", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=update", domain.Member{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Member ID is required", decodeBody(t, rec)["error"])
	})

	t.Run("passes_query_id_to_service", func(t *testing.T) {
		var gotID string
		svc := &MockRosterService{
			UpdateFn: func(ctx context.Context, id string, candidate domain.Member) (domain.Member, error) {
				gotID = id
				candidate.ID = id
				return candidate, nil
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=update&id=2025-001", domain.Member{
			Name: "Ann Lee", Email: "ann@x.com", Course: "CS101",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2025-001", gotID)
		assert.Equal(t, "Member updated successfully", decodeBody(t, rec)["message"])
	})

	t.Run("null_body_is_malformed", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=update&id=2025-001", "null")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON data", decodeBody(t, rec)["error"])
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockRosterService{
			UpdateFn: func(ctx context.Context, id string, candidate domain.Member) (domain.Member, error) {
				return domain.Member{}, roster.ErrMemberNotFound
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=update&id=2025-404", domain.Member{
			Name: "Ann Lee", Email: "ann@x.com", Course: "CS101",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Member not found", decodeBody(t, rec)["error"])
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("requires_id", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=delete", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Member ID is required", decodeBody(t, rec)["error"])
	})

	t.Run("success", func(t *testing.T) {
		rec := serve(t, &MockRosterService{}, http.MethodPost, "/api/members?action=delete&id=2025-001", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Member deleted successfully", decodeBody(t, rec)["message"])
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockRosterService{
			DeleteFn: func(ctx context.Context, id string) error {
				return roster.ErrMemberNotFound
			},
		}

		rec := serve(t, svc, http.MethodPost, "/api/members?action=delete&id=2025-404", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleStats(t *testing.T) {
	svc := &MockRosterService{
		StatsFn: func(ctx context.Context) (roster.Stats, error) {
			return roster.Stats{Total: 2, Courses: map[string]int{"CS101": 2}}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/api/members?action=stats", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats roster.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, map[string]int{"CS101": 2}, stats.Courses)
}

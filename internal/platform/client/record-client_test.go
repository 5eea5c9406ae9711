package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/json-iterator/go"

	"github.com/stretchr/testify/assert"
)

func mockRequest() SaveUserRequest {
	return SaveUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}

func TestSaveUser(t *testing.T) {
	req := mockRequest()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var got SaveUserRequest
		err := json.NewDecoder(r.Body).Decode(&got)
		assert.NoError(t, err)
		assert.Equal(t, req, got)

		resp := RecordResponse{
			ID:        "019212aa-7b3c-7def-0100a1b2c3d4e5f6",
			FirstName: got.FirstName,
			LastName:  got.LastName,
			Email:     got.Email,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cli := NewRecordClient(server.URL)
	resp, err := cli.SaveUser(req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, req.FirstName, resp.FirstName)
	assert.Equal(t, req.Email, resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestGetRecord(t *testing.T) {
	expected := RecordResponse{
		ID:        "019212aa-7b3c-7def-0100a1b2c3d4e5f6",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		ModCount:  0,
		UpdatedOn: 1726000000000,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/"+expected.ID, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	cli := NewRecordClient(server.URL)
	resp, found, err := cli.GetRecord(expected.ID)

	assert.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, resp)
	assert.Equal(t, expected, *resp)
}

func TestGetRecordNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cli := NewRecordClient(server.URL)
	resp, found, err := cli.GetRecord("019212aa-7b3c-7def-0100a1b2c3d4e5f6")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, resp)
}

func TestDeleteRecord(t *testing.T) {
	const id = "019212aa-7b3c-7def-0100a1b2c3d4e5f6"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/"+id, r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cli := NewRecordClient(server.URL)
	deleted, err := cli.DeleteRecord(id)

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestFlush(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/flush", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cli := NewRecordClient(server.URL)
	assert.NoError(t, cli.Flush())
}

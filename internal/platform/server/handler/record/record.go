package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/json-iterator/go"

	"zerodb/internal/application/service"
	"zerodb/internal/domain"
)

type Handler struct {
	saveService   *service.SaveUserService
	getService    *service.GetUserService
	deleteService *service.DeleteUserService
	flushService  *service.FlushStoreService
}

func NewHandler(saveService *service.SaveUserService,
	getService *service.GetUserService,
	deleteService *service.DeleteUserService,
	flushService *service.FlushStoreService) *Handler {
	return &Handler{
		saveService:   saveService,
		getService:    getService,
		deleteService: deleteService,
		flushService:  flushService,
	}
}

type SaveUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type RecordResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	ModCount  uint64 `json:"mod_count"`
	UpdatedOn uint64 `json:"updated_on"`
}

func MapToRecordResponse(r domain.UserRecord) RecordResponse {
	return RecordResponse{
		ID:        r.ID.String(),
		FirstName: r.Row.FirstName,
		LastName:  r.Row.LastName,
		Email:     r.Row.Email,
		ModCount:  r.ModCount,
		UpdatedOn: r.UpdatedOn,
	}
}

func (h *Handler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	var request SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	result, err := h.saveService.Execute(service.SaveUserCommand{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(MapToRecordResponse(result.Record))
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUUID(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	result, err := h.getService.Execute(service.GetUserQuery{ID: id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !result.Found {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MapToRecordResponse(result.Record))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUUID(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	result, err := h.deleteService.Execute(service.DeleteUserCommand{ID: id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !result.Deleted {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FlushStore(w http.ResponseWriter, r *http.Request) {
	if err := h.flushService.Execute(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

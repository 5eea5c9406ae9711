package service

import (
	"fmt"

	"zerodb/internal/domain"
)

type DeleteUserService struct {
	repository domain.RecordRepository
}

func NewDeleteUserService(repository domain.RecordRepository) *DeleteUserService {
	return &DeleteUserService{
		repository: repository,
	}
}

type DeleteUserCommand struct {
	ID domain.UUID
}

type DeleteUserResult struct {
	Deleted bool
}

func (s *DeleteUserService) Execute(command DeleteUserCommand) (DeleteUserResult, error) {
	deleted, err := s.repository.Delete(command.ID)
	if err != nil {
		return DeleteUserResult{}, fmt.Errorf("delete record %s: %w", command.ID, err)
	}
	return DeleteUserResult{Deleted: deleted}, nil
}

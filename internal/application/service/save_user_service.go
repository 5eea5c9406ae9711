package service

import (
	"zerodb/internal/domain"
)

type SaveUserService struct {
	repository domain.RecordRepository
}

func NewSaveUserService(repository domain.RecordRepository) *SaveUserService {
	return &SaveUserService{
		repository: repository,
	}
}

type SaveUserCommand struct {
	FirstName string
	LastName  string
	Email     string
}

type SaveUserResult struct {
	Record domain.UserRecord
}

func (s *SaveUserService) Execute(command SaveUserCommand) (SaveUserResult, error) {
	row := domain.NewUser(command.FirstName, command.LastName, command.Email)
	record, err := s.repository.Save(row)
	if err != nil {
		return SaveUserResult{}, err
	}
	return SaveUserResult{Record: record}, nil
}

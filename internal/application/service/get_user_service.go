package service

import (
	"zerodb/internal/domain"
)

type GetUserService struct {
	repository domain.RecordRepository
}

func NewGetUserService(repository domain.RecordRepository) *GetUserService {
	return &GetUserService{
		repository: repository,
	}
}

type GetUserQuery struct {
	ID domain.UUID
}

type GetUserResult struct {
	Record domain.UserRecord
	Found  bool
}

func (s *GetUserService) Execute(query GetUserQuery) (GetUserResult, error) {
	record, found, err := s.repository.Get(query.ID)
	if err != nil {
		return GetUserResult{}, err
	}
	if !found {
		return GetUserResult{Found: false}, nil
	}
	return GetUserResult{
		Record: record,
		Found:  true,
	}, nil
}

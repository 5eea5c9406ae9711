package service

import (
	"log"

	"zerodb/internal/domain"
)

type FlushStoreService struct {
	repository domain.RecordRepository
}

func NewFlushStoreService(repository domain.RecordRepository) *FlushStoreService {
	return &FlushStoreService{
		repository: repository,
	}
}

func (s *FlushStoreService) Execute() error {
	if err := s.repository.Flush(); err != nil {
		return err
	}
	log.Println("Flushed pending pages to the data file")
	return nil
}

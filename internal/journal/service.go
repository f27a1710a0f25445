package journal

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func (s *Service) Create(ctx context.Context, content string, now time.Time) (*Entry, error) {
	e := Entry{Content: content, Timestamp: now}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.DB.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

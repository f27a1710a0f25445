package idealself

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Save inserts a new profile row. Focus areas are trimmed and blanks
// dropped before joining.
func (s *Service) Save(ctx context.Context, vision string, focusAreas []string) (*Profile, error) {
	p := Profile{
		Vision:     strings.TrimSpace(vision),
		FocusAreas: JoinFocusAreas(focusAreas),
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Current returns the most recently created profile, or nil when none exists.
func (s *Service) Current(ctx context.Context) (*Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).Order("created_at desc, id desc").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func JoinFocusAreas(areas []string) string {
	clean := make([]string, 0, len(areas))
	for _, a := range areas {
		a = strings.TrimSpace(a)
		if a != "" {
			clean = append(clean, a)
		}
	}
	return strings.Join(clean, ",")
}

func SplitFocusAreas(joined string) []string {
	out := []string{}
	for _, a := range strings.Split(joined, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

package idealself

import "time"

// Profile is one snapshot of the user's vision. Saves always insert a new
// row; the "current" profile is simply the newest by created_at.
type Profile struct {
	ID         uint64 `gorm:"primaryKey"`
	Vision     string `gorm:"type:text"`
	FocusAreas string `gorm:"type:text"` // comma-joined tags
	CreatedAt  time.Time
}

func (Profile) TableName() string { return "ideal_self_profiles" }

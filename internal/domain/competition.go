package domain

import (
	"time"

	"github.com/google/uuid"
)

// Competition represents a trading contest users can join
type Competition struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Status       CompetitionStatus `json:"status"`
	StartsAt     time.Time         `json:"starts_at"`
	EndsAt       time.Time         `json:"ends_at"`
	PrizePool    float64           `json:"prize_pool"`
	Participants int               `json:"participants"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CompetitionStatus is the lifecycle state of a competition
type CompetitionStatus string

// CompetitionStatus constants
const (
	CompetitionUpcoming CompetitionStatus = "upcoming"
	CompetitionRunning  CompetitionStatus = "running"
	CompetitionFinished CompetitionStatus = "finished"
)

// ValidCompetitionStatus reports whether s is a known competition status
func ValidCompetitionStatus(s CompetitionStatus) bool {
	switch s {
	case CompetitionUpcoming, CompetitionRunning, CompetitionFinished:
		return true
	}
	return false
}

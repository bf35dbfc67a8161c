// Package pomodoro runs focus timers and keeps a week of session statistics.
package pomodoro

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Result string

const (
	Completed    Result = "completed"
	StoppedEarly Result = "stoppedEarly"
)

// Session is one finished or abandoned timer run.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Duration  time.Duration `json:"-"`
	Result    Result        `json:"result"`
}

func NewSession(start, end time.Time, result Result) Session {
	return Session{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
		Duration:  end.Sub(start),
		Result:    result,
	}
}

type sessionAlias Session

// Duration travels as fractional seconds.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		sessionAlias
		Duration float64 `json:"duration"`
	}{sessionAlias(s), s.Duration.Seconds()})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var in struct {
		sessionAlias
		Duration float64 `json:"duration"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Session(in.sessionAlias)
	s.Duration = time.Duration(in.Duration * float64(time.Second))
	return nil
}

package meeting

import (
	"time"

	"roundtable/internal/domain"
)

// ActionType names every event the reducer understands.
type ActionType string

const (
	ActionStartMeeting             ActionType = "START_MEETING"
	ActionEndMeeting               ActionType = "END_MEETING"
	ActionPauseTimer               ActionType = "PAUSE_TIMER"
	ActionResumeTimer              ActionType = "RESUME_TIMER"
	ActionTick                     ActionType = "TICK"
	ActionNextParticipant          ActionType = "NEXT_PARTICIPANT"
	ActionSetNextSpeaker           ActionType = "SET_NEXT_SPEAKER"
	ActionSkipParticipant          ActionType = "SKIP_PARTICIPANT"
	ActionDonateTime               ActionType = "DONATE_TIME"
	ActionCustomizeParticipantTime ActionType = "CUSTOMIZE_PARTICIPANT_TIME"
	ActionAddTime                  ActionType = "ADD_TIME"
	ActionSetTimerStatus           ActionType = "SET_TIMER_STATUS"
)

// StoredTimerConfig is the setup-time timer configuration as persisted by the
// setup storage. START_MEETING translates it into the immutable
// domain.TimerConfig carried on the state.
type StoredTimerConfig struct {
	Mode                          domain.TimerMode `json:"mode"`
	TotalDurationMinutes          int              `json:"total_duration_minutes,omitempty"`
	DurationPerParticipantSeconds int              `json:"duration_per_participant_seconds,omitempty"`
	PerParticipantMinutes         int              `json:"per_participant_minutes,omitempty"`
	AllowExtension                bool             `json:"allow_extension"`
	ExtensionAmountSeconds        int              `json:"extension_amount_seconds,omitempty"`
}

// DurationSeconds computes the countdown duration for the configured mode.
// A result of 0 is a configuration defect: the meeting still starts, but
// every turn ends immediately. Callers should log it, not fail on it.
func (c StoredTimerConfig) DurationSeconds() int {
	switch c.Mode {
	case domain.TimerModePerParticipant:
		if c.DurationPerParticipantSeconds > 0 {
			return c.DurationPerParticipantSeconds
		}
		return c.PerParticipantMinutes * 60
	default:
		return c.TotalDurationMinutes * 60
	}
}

// StartMeetingPayload carries everything START_MEETING needs to replace the
// aggregate wholesale from setup inputs.
type StartMeetingPayload struct {
	Config                        StoredTimerConfig    `json:"config"`
	Participants                  []domain.Participant `json:"participants"`
	Kickoff                       domain.KickoffSettings `json:"kickoff"`
	SelectedGridComponentIDs      []string             `json:"selected_grid_component_ids,omitempty"`
	ParticipantListVisibilityMode string               `json:"participant_list_visibility_mode,omitempty"`
}

// Action is one reducer event. Only the fields relevant to Type are set.
type Action struct {
	Type              ActionType
	Start             *StartMeetingPayload
	ElapsedSeconds    int
	ParticipantID     string
	FromParticipantID string
	TimeSeconds       int
	Status            domain.TimerStatus
	At                time.Time
}

func StartMeeting(payload StartMeetingPayload) Action {
	return Action{Type: ActionStartMeeting, Start: &payload}
}

func EndMeeting() Action {
	return Action{Type: ActionEndMeeting}
}

func PauseTimer() Action {
	return Action{Type: ActionPauseTimer}
}

func ResumeTimer() Action {
	return Action{Type: ActionResumeTimer}
}

// Tick advances the clock by elapsed whole seconds. The driver normally
// passes 1; coalesced intervals arrive as a single larger batch.
func Tick(elapsedSeconds int) Action {
	return Action{Type: ActionTick, ElapsedSeconds: elapsedSeconds}
}

func NextParticipant() Action {
	return Action{Type: ActionNextParticipant}
}

func SetNextSpeaker(participantID string) Action {
	return Action{Type: ActionSetNextSpeaker, ParticipantID: participantID}
}

func SkipParticipantAction(participantID string) Action {
	return Action{Type: ActionSkipParticipant, ParticipantID: participantID}
}

// DonateTime donates a flat small quantity from the given participant to
// whoever is currently speaking. The recipient is always implicit.
func DonateTime(fromParticipantID string, at time.Time) Action {
	return Action{Type: ActionDonateTime, FromParticipantID: fromParticipantID, At: at}
}

func CustomizeParticipantTime(participantID string, timeSeconds int) Action {
	return Action{Type: ActionCustomizeParticipantTime, ParticipantID: participantID, TimeSeconds: timeSeconds}
}

func AddTime() Action {
	return Action{Type: ActionAddTime}
}

// SetTimerStatus directly overrides the timer status. Escape hatch for
// driver-detected terminal states.
func SetTimerStatus(status domain.TimerStatus) Action {
	return Action{Type: ActionSetTimerStatus, Status: status}
}

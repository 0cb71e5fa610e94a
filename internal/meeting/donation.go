package meeting

import (
	"time"

	"github.com/google/uuid"

	"roundtable/internal/domain"
)

// DefaultDonationSeconds is the flat quantity offered by the UI-level
// "donate" gesture. The general engine below accepts arbitrary amounts.
const DefaultDonationSeconds = 10

// MaxDonatable returns the most the participant may give away right now.
//
// A participant who has not yet spoken may donate up to 10% of their own
// allocation (floored), so they cannot give away so much that they cannot
// speak meaningfully later. A participant who already finished or forfeited
// their turn may donate everything they have left. The active speaker may
// never donate: the recipient is always the current speaker, and
// self-donation is meaningless.
func MaxDonatable(p domain.Participant) int {
	switch p.Status {
	case domain.ParticipantStatusPending:
		return p.AllocatedTimeSeconds / 10
	case domain.ParticipantStatusFinished, domain.ParticipantStatusSkipped:
		return p.RemainingTimeSeconds
	default:
		return 0
	}
}

// Donate transfers amount seconds from the donor to the current speaker.
// It fails closed (the unmodified input pointer is returned) when there is
// no current speaker, the donor is unknown or ineligible, or the amount is
// out of range. A successful donation conserves total time: the donor's
// balance drops by exactly what the recipient's gains, and an immutable
// ledger record is appended.
func Donate(s *domain.MeetingState, fromParticipantID string, amountSeconds int, at time.Time) *domain.MeetingState {
	if s.CurrentSpeakerID == "" || fromParticipantID == s.CurrentSpeakerID {
		return s
	}
	di := s.FindParticipant(fromParticipantID)
	if di < 0 {
		return s
	}
	ri := s.CurrentSpeakerIndex()
	if ri < 0 {
		return s
	}
	donor := s.Participants[di]
	if amountSeconds <= 0 || amountSeconds > MaxDonatable(donor) || amountSeconds > donor.RemainingTimeSeconds {
		return s
	}

	ns := s.Clone()
	d := &ns.Participants[di]
	r := &ns.Participants[ri]
	d.RemainingTimeSeconds -= amountSeconds
	d.DonatedTimeSeconds += amountSeconds
	r.RemainingTimeSeconds += amountSeconds
	r.ReceivedTimeSeconds += amountSeconds

	// The recipient is the one being timed, so the displayed countdown
	// follows their new balance.
	ns.CurrentTimeSeconds = r.RemainingTimeSeconds

	if at.IsZero() {
		at = time.Now().UTC()
	}
	ns.Donations = append(ns.Donations, domain.TimeDonation{
		ID:                uuid.NewString(),
		FromParticipantID: d.ID,
		ToParticipantID:   r.ID,
		AmountSeconds:     amountSeconds,
		Timestamp:         at,
	})
	return ns
}

// DonateToSpeaker is the constrained variant behind the DONATE_TIME action:
// the amount is the flat default or the donor's eligible maximum, whichever
// is smaller.
func DonateToSpeaker(s *domain.MeetingState, fromParticipantID string, at time.Time) *domain.MeetingState {
	di := s.FindParticipant(fromParticipantID)
	if di < 0 {
		return s
	}
	donor := s.Participants[di]
	amount := DefaultDonationSeconds
	if max := MaxDonatable(donor); max < amount {
		amount = max
	}
	if donor.RemainingTimeSeconds < amount {
		amount = donor.RemainingTimeSeconds
	}
	if amount <= 0 {
		return s
	}
	return Donate(s, fromParticipantID, amount, at)
}

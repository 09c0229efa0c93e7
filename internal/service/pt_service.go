package service

import (
	"encoding/json"
	"log"

	"coachpay/internal/models"
	"coachpay/internal/repository"
	"coachpay/pkg/commission"
	"coachpay/pkg/monthkey"
)

// PTService attributes PT package revenue to coaches and applies the
// revenue-share rate.
type PTService struct {
	receiptRepo *repository.ReceiptRepository
	sessionRepo *repository.PTSessionRepository
	coachRepo   *repository.CoachRepository
}

func NewPTService(
	receiptRepo *repository.ReceiptRepository,
	sessionRepo *repository.PTSessionRepository,
	coachRepo *repository.CoachRepository,
) *PTService {
	return &PTService{receiptRepo: receiptRepo, sessionRepo: sessionRepo, coachRepo: coachRepo}
}

// Attribution reports how a month's PT receipts resolved. Skips are
// expected (legacy rows, revenue nobody coached) and surface here for audit
// rather than as errors.
type Attribution struct {
	Receipts        int `json:"receipts"`
	Matched         int `json:"matched"`
	Unresolvable    int `json:"unresolvable"`     // no session id on the receipt at all
	MalformedDetail int `json:"malformed_detail"` // legacy detail blob did not parse
	Unmatched       int `json:"unmatched"`        // session found but no coach resolved
}

// legacyDetail is the shape of the pre-migration receipt detail blob.
type legacyDetail struct {
	PTSessionID uint `json:"pt_session_id"`
}

// RevenueByCoach walks every PT receipt of the month once and returns
// attributed revenue per coach id. Resolution order per receipt: the
// structured pt_session_id column, then the legacy JSON detail blob; the
// session's coach FK, then exact coach-name equality. Anything that fails
// to resolve is counted and dropped.
func (s *PTService) RevenueByCoach(month string) (map[uint]int64, *Attribution, error) {
	start, end, err := monthkey.Bounds(month)
	if err != nil {
		return nil, nil, err
	}
	receipts, err := s.receiptRepo.ListPTReceipts(start, end)
	if err != nil {
		return nil, nil, err
	}

	att := &Attribution{Receipts: len(receipts)}
	revenue := make(map[uint]int64)
	nameCache := make(map[string]uint) // coach name -> id; 0 = known unresolvable
	for _, rc := range receipts {
		sessionID, ok := s.resolveSessionID(rc, att)
		if !ok {
			continue
		}
		sess, err := s.sessionRepo.GetByID(sessionID)
		if err != nil {
			att.Unmatched++
			continue
		}
		coachID := s.resolveCoach(sess, nameCache)
		if coachID == 0 {
			att.Unmatched++
			continue
		}
		revenue[coachID] += rc.AmountCents
		att.Matched++
	}
	if att.Unresolvable+att.MalformedDetail+att.Unmatched > 0 {
		log.Printf("[pt] attribution %s: receipts=%d matched=%d unresolvable=%d malformed=%d unmatched=%d",
			month, att.Receipts, att.Matched, att.Unresolvable, att.MalformedDetail, att.Unmatched)
	}
	return revenue, att, nil
}

func (s *PTService) resolveSessionID(rc models.Receipt, att *Attribution) (uint, bool) {
	if rc.PTSessionID != nil && *rc.PTSessionID != 0 {
		return *rc.PTSessionID, true
	}
	if rc.Detail == "" {
		att.Unresolvable++
		return 0, false
	}
	var d legacyDetail
	if err := json.Unmarshal([]byte(rc.Detail), &d); err != nil || d.PTSessionID == 0 {
		att.MalformedDetail++
		return 0, false
	}
	return d.PTSessionID, true
}

func (s *PTService) resolveCoach(sess *models.PTSession, nameCache map[string]uint) uint {
	if sess.CoachID != nil && *sess.CoachID != 0 {
		return *sess.CoachID
	}
	if sess.CoachName == "" {
		return 0
	}
	if id, seen := nameCache[sess.CoachName]; seen {
		return id
	}
	coach, err := s.coachRepo.GetByFullName(sess.CoachName)
	if err != nil {
		nameCache[sess.CoachName] = 0
		return 0
	}
	nameCache[sess.CoachName] = coach.ID
	return coach.ID
}

// CommissionForCoach returns the coach's PT commission for the month at the
// requested rate.
func (s *PTService) CommissionForCoach(coachID uint, month string, elevated bool) (int64, error) {
	revenue, _, err := s.RevenueByCoach(month)
	if err != nil {
		return 0, err
	}
	return commission.PTCommissionCents(revenue[coachID], elevated), nil
}

// BackfillResult reports a session-coach backfill run.
type BackfillResult struct {
	Scanned    int `json:"scanned"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
}

// BackfillSessionCoaches resolves name-only PT sessions to the coach FK.
// Name matching is a migration tool: once this has run clean, runtime
// attribution only ever follows the FK.
func (s *PTService) BackfillSessionCoaches() (*BackfillResult, error) {
	sessions, err := s.sessionRepo.ListUnresolved()
	if err != nil {
		return nil, err
	}
	res := &BackfillResult{Scanned: len(sessions)}
	for _, sess := range sessions {
		coach, err := s.coachRepo.GetByFullName(sess.CoachName)
		if err != nil {
			res.Unresolved++
			continue
		}
		if err := s.sessionRepo.SetCoach(sess.ID, coach.ID); err != nil {
			log.Printf("[pt] backfill session %d: %v", sess.ID, err)
			res.Unresolved++
			continue
		}
		res.Resolved++
	}
	log.Printf("[pt] backfill: scanned=%d resolved=%d unresolved=%d", res.Scanned, res.Resolved, res.Unresolved)
	return res, nil
}
